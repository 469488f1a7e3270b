package checkpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres keeps the checkpoint in the relay_checkpoints table, next to the
// change feed it indexes into. This is the default backend: one database
// holds both the feed and the position, so operators have nothing extra to
// run.
type Postgres struct {
	db   *sql.DB
	name string
}

// NewPostgres constructs a Postgres-backed checkpoint store. name
// distinguishes relays sharing one table.
func NewPostgres(db *sql.DB, name string) *Postgres {
	return &Postgres{db: db, name: name}
}

func (p *Postgres) Load(ctx context.Context) (int64, error) {
	var seq int64
	err := p.db.QueryRowContext(ctx,
		`SELECT seq FROM relay_checkpoints WHERE name = $1`, p.name,
	).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load checkpoint %q: %w", p.name, err)
	}
	return seq, nil
}

func (p *Postgres) Save(ctx context.Context, seq int64) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO relay_checkpoints (name, seq)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET seq = EXCLUDED.seq
	`, p.name, seq)
	if err != nil {
		return fmt.Errorf("save checkpoint %q: %w", p.name, err)
	}
	return nil
}
