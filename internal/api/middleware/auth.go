package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nailsrdv/NRDV-BookingService/internal/api/handlers"
	"github.com/nailsrdv/NRDV-BookingService/internal/domain"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	msgMissingIdentity = "identifiants d'authentification manquants"
	msgInvalidIdentity = "identifiants d'authentification invalides"
)

type ctxKey string

const actorKey ctxKey = "actor"

// Auth извлекает аутентифицированного актора из заголовков, проставленных
// API-шлюзом, и кладет его в контекст запроса.
// Сервис доверяет шлюзу: проверка подписи токена происходит выше по цепочке.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get(headerUserID)
		roleStr := r.Header.Get(headerUserRole)

		if idStr == "" || roleStr == "" {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}

		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidIdentity)
			return
		}

		role := domain.ActorRole(roleStr)
		if role != domain.RoleClient && role != domain.RoleProvider {
			handlers.RespondUnauthorized(w, msgInvalidIdentity)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, domain.Actor{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActor возвращает актора из контекста запроса
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
