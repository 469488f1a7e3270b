package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"person-service/pkg/requestcontext"
)

// HeaderRequestID is the transport header carrying the per-request
// identifier. Infrastructure that retries a request must resend the same
// value; it becomes the idempotency key for writes.
const HeaderRequestID = "X-Request-Id"

// RequestID injects a request identifier into the context, taking the
// caller-supplied header when present and generating one otherwise.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
