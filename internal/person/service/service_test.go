package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"person-service/internal/person/models"
	"person-service/internal/person/store/memory"
	dErrors "person-service/pkg/domain-errors"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(store, logger), store
}

func adaInput() CreateInput {
	return CreateInput{
		FirstName:   "Ada",
		PhoneNumber: "+1-555-1234",
		Address:     "1 Infinite Loop",
	}
}

func TestCreateAssignsRequestIDAsKey(t *testing.T) {
	svc, _ := newService(t)

	person, err := svc.Create(context.Background(), adaInput(), "req-1")
	require.NoError(t, err)

	assert.Equal(t, "req-1", person.ID)
	assert.Equal(t, "Ada", person.FirstName)
	assert.Equal(t, "+1-555-1234", person.PhoneNumber)
	assert.Equal(t, "1 Infinite Loop", person.Address)
}

func TestCreateRetrySameRequestIDIsIdempotent(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, adaInput(), "req-1")
	require.NoError(t, err)

	replayed, err := svc.Create(ctx, adaInput(), "req-1")
	require.NoError(t, err, "transport-level retry must succeed")
	assert.Equal(t, first, replayed)

	persons, err := store.ScanAll(ctx)
	require.NoError(t, err)
	assert.Len(t, persons, 1, "retry must not create a duplicate row")
}

func TestCreateDistinctRequestIDsCreateDistinctRecords(t *testing.T) {
	// Duplicate end-user submissions arrive with fresh request ids; the
	// service intentionally does not deduplicate those.
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adaInput(), "req-1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, adaInput(), "req-2")
	require.NoError(t, err)

	persons, err := store.ScanAll(ctx)
	require.NoError(t, err)
	assert.Len(t, persons, 2)
}

func TestCreateRequiresRequestID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), adaInput(), "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

type failingStore struct {
	err error
}

func (f *failingStore) PutIfAbsent(context.Context, *models.Person) error { return f.err }
func (f *failingStore) ScanAll(context.Context) ([]*models.Person, error) { return nil, f.err }

func TestStoreFailurePropagatesWithoutRetry(t *testing.T) {
	storeErr := errors.New("store down")
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := New(&failingStore{err: storeErr}, logger)

	_, err := svc.Create(context.Background(), adaInput(), "req-1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.List(context.Background())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestListReturnsEmptySliceNotNil(t *testing.T) {
	svc, _ := newService(t)

	persons, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, persons)
	assert.Empty(t, persons)
}

func TestListReturnsEveryStoredRecordOnce(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adaInput(), "req-1")
	require.NoError(t, err)

	persons, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "req-1", persons[0].ID)
}
