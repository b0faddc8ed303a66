package auth

import (
	"context"

	"github.com/sebas-aldana/brm-backend/internal/domain"
)

type contextKey struct{}

var userKey = contextKey{}

func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}
