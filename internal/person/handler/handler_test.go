package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"person-service/internal/person/models"
	"person-service/internal/person/service"
	"person-service/internal/person/store/memory"
	"person-service/internal/platform/middleware"
)

func newPersonRouter(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(store, logger)

	h := New(svc, logger, nil)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	h.Register(r)
	return r, store
}

func createAda(t *testing.T, router http.Handler, requestID string) *httptest.ResponseRecorder {
	t.Helper()
	body := []byte(`{"firstName":"Ada","phoneNumber":"+1-555-1234","address":"1 Infinite Loop"}`)
	req := httptest.NewRequest(http.MethodPost, "/persons", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderRequestID, requestID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePersonStoresRecordUnderRequestID(t *testing.T) {
	router, _ := newPersonRouter(t)

	rec := createAda(t, router, "req-1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating person, got %d: %s", rec.Code, rec.Body.String())
	}

	var person models.Person
	if err := json.NewDecoder(rec.Body).Decode(&person); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if person.ID != "req-1" {
		t.Fatalf("expected id req-1, got %q", person.ID)
	}
	if person.FirstName != "Ada" || person.PhoneNumber != "+1-555-1234" || person.Address != "1 Infinite Loop" {
		t.Fatalf("unexpected person in response: %+v", person)
	}
}

func TestCreatePersonRetryKeepsSingleRecord(t *testing.T) {
	router, store := newPersonRouter(t)

	first := createAda(t, router, "req-1")
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first create, got %d", first.Code)
	}
	retry := createAda(t, router, "req-1")
	if retry.Code != http.StatusCreated {
		t.Fatalf("expected 201 on retried create, got %d", retry.Code)
	}

	persons, err := store.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(persons) != 1 {
		t.Fatalf("expected exactly one stored record after retry, got %d", len(persons))
	}
	if persons[0].ID != "req-1" {
		t.Fatalf("expected stored id req-1, got %q", persons[0].ID)
	}
}

func TestCreatePersonGeneratesRequestIDWhenHeaderMissing(t *testing.T) {
	router, _ := newPersonRouter(t)

	body := []byte(`{"firstName":"Ada","phoneNumber":"+1-555-1234","address":"1 Infinite Loop"}`)
	req := httptest.NewRequest(http.MethodPost, "/persons", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var person models.Person
	if err := json.NewDecoder(rec.Body).Decode(&person); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if person.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if got := rec.Header().Get(middleware.HeaderRequestID); got != person.ID {
		t.Fatalf("expected response header %q to echo the id %q", got, person.ID)
	}
}

func TestCreatePersonRejectsInvalidBody(t *testing.T) {
	router, store := newPersonRouter(t)

	cases := map[string]string{
		"missing firstName": `{"phoneNumber":"+1-555-1234","address":"1 Infinite Loop"}`,
		"bad phone":         `{"firstName":"Ada","phoneNumber":"call me","address":"1 Infinite Loop"}`,
		"short address":     `{"firstName":"Ada","phoneNumber":"+1-555-1234","address":"abc"}`,
		"unknown field":     `{"firstName":"Ada","phoneNumber":"+1-555-1234","address":"1 Infinite Loop","nickname":"A"}`,
		"not json":          `{"firstName":`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/persons", bytes.NewReader([]byte(body)))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var errBody map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
				t.Fatalf("expected structured error body: %v", err)
			}
			if errBody["error"] == "" {
				t.Fatalf("expected error code in body")
			}
		})
	}

	persons, err := store.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(persons) != 0 {
		t.Fatalf("rejected requests must not store records, found %d", len(persons))
	}
}

func TestListPersonsReturnsAllRecords(t *testing.T) {
	router, _ := newPersonRouter(t)

	if rec := createAda(t, router, "req-1"); rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed with %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/persons", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing persons, got %d", rec.Code)
	}

	var persons []models.Person
	if err := json.NewDecoder(rec.Body).Decode(&persons); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(persons) != 1 {
		t.Fatalf("expected one person, got %d", len(persons))
	}
	if persons[0].ID != "req-1" {
		t.Fatalf("expected id req-1, got %q", persons[0].ID)
	}
}

func TestListPersonsEmptyIsJSONArray(t *testing.T) {
	router, _ := newPersonRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/persons", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}
