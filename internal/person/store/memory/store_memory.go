package memory

import (
	"context"
	"sync"
	"time"

	"person-service/internal/changefeed"
	"person-service/internal/person/codec"
	"person-service/internal/person/models"
	"person-service/pkg/platform/sentinel"
)

// Store is the in-memory record store with an attached change feed. It
// mirrors the postgres implementation closely enough that services and the
// relay can be unit tested against it.
type Store struct {
	mu      sync.RWMutex
	persons map[string]*models.Person
	feed    []changefeed.Mutation
	nextSeq int64
}

func New() *Store {
	return &Store{persons: make(map[string]*models.Person), nextSeq: 1}
}

func (s *Store) PutIfAbsent(_ context.Context, person *models.Person) error {
	image, err := codec.EncodeImage(person)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.persons[person.ID]; exists {
		return sentinel.ErrConflict
	}

	stored := *person
	s.persons[person.ID] = &stored
	s.appendLocked(changefeed.KindInsert, image)
	return nil
}

func (s *Store) ScanAll(_ context.Context) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Person, 0, len(s.persons))
	for _, p := range s.persons {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// Poll implements changefeed.Feed.
func (s *Store) Poll(_ context.Context, afterSeq int64, limit int) ([]changefeed.Mutation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []changefeed.Mutation
	for _, m := range s.feed {
		if m.Seq <= afterSeq {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// AppendMutation injects an arbitrary mutation into the feed. The write path
// only ever produces inserts; tests use this to exercise the relay's
// handling of modify/remove notifications and malformed images.
func (s *Store) AppendMutation(kind changefeed.Kind, image []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(kind, image)
}

func (s *Store) appendLocked(kind changefeed.Kind, image []byte) {
	s.feed = append(s.feed, changefeed.Mutation{
		Seq:        s.nextSeq,
		Kind:       kind,
		Image:      image,
		OccurredAt: time.Now(),
	})
	s.nextSeq++
}
