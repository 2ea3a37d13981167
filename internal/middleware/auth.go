package middleware

import (
	"context"
	"net/http"

	"github.com/crewline/siteproof/internal/domain"
)

type contextKey string

const (
	// ContextKeyActor is the key for storing the caller identity in request context.
	ContextKeyActor contextKey = "actor"
)

// Identity headers set by the upstream identity/role provider. Authentication
// itself happens outside this service; these are trusted as already verified.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// ActorMiddleware extracts the caller identity from the identity provider headers.
type ActorMiddleware struct{}

// NewActorMiddleware creates a new ActorMiddleware.
func NewActorMiddleware() *ActorMiddleware {
	return &ActorMiddleware{}
}

// Authenticate validates the identity headers and adds the actor to request context.
func (m *ActorMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := r.Header.Get(HeaderActorID)
		if actorID == "" {
			http.Error(w, "missing actor identity", http.StatusUnauthorized)
			return
		}

		role := domain.Role(r.Header.Get(HeaderActorRole))
		if role == "" {
			http.Error(w, "missing actor role", http.StatusUnauthorized)
			return
		}
		if !role.IsValid() {
			http.Error(w, "unrecognized actor role", http.StatusUnauthorized)
			return
		}

		actor := domain.Actor{ID: actorID, Role: role}
		ctx := context.WithValue(r.Context(), ContextKeyActor, actor)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext retrieves the authenticated actor from request context.
func ActorFromContext(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctx.Value(ContextKeyActor).(domain.Actor)
	if !ok || actor.ID == "" {
		return domain.Actor{}, domain.ErrUnknownActor
	}
	return actor, nil
}
