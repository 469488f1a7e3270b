// Package service holds the ingestion and listing services over the record
// store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"person-service/internal/person/models"
	"person-service/internal/person/store"
	dErrors "person-service/pkg/domain-errors"
	"person-service/pkg/platform/sentinel"
)

// CreateInput is the validated person payload, minus the id the service
// assigns. Validation happens upstream in the HTTP layer; the service does
// not re-validate.
type CreateInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
}

// Service exposes person ingestion and listing.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func New(store store.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create writes a new person record keyed by the transport request id.
//
// The request id is the idempotency key: infrastructure-level retries of the
// same logical request resend the same id, so the write targets the same key
// and can never produce a duplicate row. A conflict therefore means this
// exact request already landed, and the stored record is returned as-is.
// Duplicate end-user submissions arrive with fresh request ids and create
// distinct records; that is accepted behavior.
func (s *Service) Create(ctx context.Context, input CreateInput, requestID string) (*models.Person, error) {
	if requestID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request id is required")
	}

	person := &models.Person{
		ID:          requestID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
	}

	err := s.store.PutIfAbsent(ctx, person)
	if errors.Is(err, sentinel.ErrConflict) {
		// A replayed request carries the same payload as the stored record,
		// so answering with it is equivalent to reading the row back.
		s.logger.InfoContext(ctx, "create replayed, record already stored",
			"person_id", person.ID,
		)
		return person, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store person")
	}
	return person, nil
}

// List returns every stored person in a single scan. No ordering guarantee
// and no pagination; recent writes may be missing if the underlying scan is
// eventually consistent.
func (s *Service) List(ctx context.Context) ([]*models.Person, error) {
	persons, err := s.store.ScanAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list persons")
	}
	if persons == nil {
		persons = []*models.Person{}
	}
	return persons, nil
}
