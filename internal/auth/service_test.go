package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sebas-aldana/brm-backend/internal/domain"
	apperrors "github.com/sebas-aldana/brm-backend/internal/errors"
)

type mockUserRepository struct {
	FindByIDFunc    func(ctx context.Context, id int) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	InsertFunc      func(ctx context.Context, user domain.User) (int, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepository) Insert(ctx context.Context, user domain.User) (int, error) {
	return m.InsertFunc(ctx, user)
}

func newTestService(repo UserRepository) *Service {
	return NewService(repo, "test-secret", time.Hour, zap.NewNop())
}

func TestRegister_DefaultsToClientRole(t *testing.T) {
	var inserted domain.User
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, apperrors.NewNotFoundError("not found")
		},
		InsertFunc: func(ctx context.Context, user domain.User) (int, error) {
			inserted = user
			return 1, nil
		},
	}

	user, err := newTestService(repo).Register(context.Background(), "Ana", "ana@example.com", "password123", "")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleClient, user.Role)
	assert.Equal(t, 1, user.ID)
	assert.NotEqual(t, "password123", inserted.PasswordHash, "password must be stored hashed")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email}, nil
		},
	}

	_, err := newTestService(repo).Register(context.Background(), "Ana", "ana@example.com", "password123", "")

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok, "expected ConflictError, got %T", err)
}

func TestRegister_InvalidRole(t *testing.T) {
	_, err := newTestService(&mockUserRepository{}).Register(context.Background(), "Ana", "ana@example.com", "password123", "superuser")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok, "expected ValidationError, got %T", err)
}

func TestLoginAndParseToken_Roundtrip(t *testing.T) {
	registered := make(map[string]domain.User)
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if user, ok := registered[email]; ok {
				return &user, nil
			}
			return nil, apperrors.NewNotFoundError("not found")
		},
		InsertFunc: func(ctx context.Context, user domain.User) (int, error) {
			user.ID = 7
			registered[user.Email] = user
			return 7, nil
		},
	}

	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "password123", domain.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "ana@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	registered := make(map[string]domain.User)
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if user, ok := registered[email]; ok {
				return &user, nil
			}
			return nil, apperrors.NewNotFoundError("not found")
		},
		InsertFunc: func(ctx context.Context, user domain.User) (int, error) {
			registered[user.Email] = user
			return 1, nil
		},
	}

	svc := newTestService(repo)
	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong-password")
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok, "expected UnauthorizedError, got %T", err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, apperrors.NewNotFoundError("not found")
		},
	}

	_, err := newTestService(repo).Login(context.Background(), "ghost@example.com", "password123")

	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := newTestService(&mockUserRepository{}).ParseToken("not-a-token")

	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestParseToken_WrongSecret(t *testing.T) {
	registered := map[string]domain.User{}
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if user, ok := registered[email]; ok {
				return &user, nil
			}
			return nil, apperrors.NewNotFoundError("not found")
		},
		InsertFunc: func(ctx context.Context, user domain.User) (int, error) {
			registered[user.Email] = user
			return 1, nil
		},
	}

	issuer := newTestService(repo)
	_, err := issuer.Register(context.Background(), "Ana", "ana@example.com", "password123", "")
	require.NoError(t, err)

	token, err := issuer.Login(context.Background(), "ana@example.com", "password123")
	require.NoError(t, err)

	other := NewService(repo, "different-secret", time.Hour, zap.NewNop())
	_, err = other.ParseToken(token)

	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok, "token signed with another secret must be rejected")
}
