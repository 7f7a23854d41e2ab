package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/utils"
)

type contextKey string

const (
	UserIDHeader            = "X-User-ID"
	UserIDKey    contextKey = "userID"
)

// Identity reads the optional X-User-ID header so swarm actions can be
// attributed to a user. It does not authenticate: a missing header is
// anonymous and only a malformed one is rejected.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid " + UserIDHeader + " header",
			})
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFrom returns the acting user, or nil for anonymous requests.
func UserIDFrom(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
