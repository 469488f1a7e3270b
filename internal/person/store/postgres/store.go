package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"person-service/internal/changefeed"
	"person-service/internal/person/codec"
	"person-service/internal/person/models"
	"person-service/pkg/platform/sentinel"
)

// Store persists person records in PostgreSQL. The change feed is a
// transactional outbox: the person row and its INSERT mutation row are
// written in one transaction, so the feed never misses or invents an insert.
// The persons table keeps discrete columns for querying; the feed row
// carries the canonical JSON image the relay decodes.
type Store struct {
	db *sql.DB
}

// New constructs a PostgreSQL-backed person store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) PutIfAbsent(ctx context.Context, person *models.Person) error {
	image, err := codec.EncodeImage(person)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO persons (id, first_name, last_name, phone_number, address)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, person.ID, person.FirstName, person.LastName, person.PhoneNumber, person.Address)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	if inserted == 0 {
		return sentinel.ErrConflict
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO person_changes (kind, image)
		VALUES ($1, $2)
	`, string(changefeed.KindInsert), []byte(image))
	if err != nil {
		return fmt.Errorf("append change feed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put: %w", err)
	}
	return nil
}

func (s *Store) ScanAll(ctx context.Context) ([]*models.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, phone_number, address
		FROM persons
	`)
	if err != nil {
		return nil, fmt.Errorf("scan persons: %w", err)
	}
	defer rows.Close()

	var persons []*models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.Address); err != nil {
			return nil, fmt.Errorf("scan person row: %w", err)
		}
		persons = append(persons, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return persons, nil
}

// Poll implements changefeed.Feed over the person_changes table.
func (s *Store) Poll(ctx context.Context, afterSeq int64, limit int) ([]changefeed.Mutation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, image, occurred_at
		FROM person_changes
		WHERE seq > $1
		ORDER BY seq
		LIMIT $2
	`, afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("poll change feed: %w", err)
	}
	defer rows.Close()

	var mutations []changefeed.Mutation
	for rows.Next() {
		var (
			m     changefeed.Mutation
			kind  string
			image []byte
		)
		if err := rows.Scan(&m.Seq, &kind, &image, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan change row: %w", err)
		}
		m.Kind = changefeed.Kind(kind)
		m.Image = image
		mutations = append(mutations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate change rows: %w", err)
	}
	return mutations, nil
}
