package users

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	userEntity "github.com/benedict-erwin/weather-insight/internal/entities/users"
	"github.com/benedict-erwin/weather-insight/internal/repository/sqlite"
	"github.com/benedict-erwin/weather-insight/pkg/apperror"
	"github.com/benedict-erwin/weather-insight/pkg/auth"
)

func newTestService(t *testing.T) (*Service, *clockwork.FakeClock) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewService(sqlite.NewUserRepository(db), clock), clock
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, &userEntity.CreateUserRequest{Email: " Ana@Example.com ", Password: "secret1"})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.Password)

	ok, err := auth.CheckPassword(u.Password, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreate_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &userEntity.CreateUserRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &userEntity.CreateUserRequest{Email: "ANA@example.com", Password: "other12"})
	require.ErrorIs(t, err, ErrUserExists)

	appErr := apperror.As(err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
	assert.Equal(t, constants.CodeDuplicateResource, appErr.Code)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestCreate_PasswordTooLong(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &userEntity.CreateUserRequest{Email: "ana@example.com", Password: strings.Repeat("a", 80)})
	require.Error(t, err)
	appErr := apperror.As(err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
	assert.Equal(t, constants.CodeValidationFailed, appErr.Code)

	// multi-byte runes count by bytes
	_, err = svc.Create(ctx, &userEntity.CreateUserRequest{Email: "ana@example.com", Password: strings.Repeat("é", 37)})
	assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)

	_, err = svc.Create(ctx, &userEntity.CreateUserRequest{Email: "ana@example.com", Password: strings.Repeat("a", auth.MaxPasswordBytes)})
	require.NoError(t, err)
}

func TestFindByEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	missing, err := svc.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svc.Create(ctx, &userEntity.CreateUserRequest{Email: "bo@example.com", Password: "secret1"})
	require.NoError(t, err)

	found, err := svc.FindByEmail(ctx, "BO@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "bo@example.com", found.Email)
}

func TestFindAll_CreationOrder(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		_, err := svc.Create(ctx, &userEntity.CreateUserRequest{Email: email, Password: "secret1"})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	list, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c@example.com", list[0].Email)
	assert.Equal(t, "b@example.com", list[2].Email)

	resp := userEntity.ToResponses(list)
	assert.Equal(t, list[0].ID, resp[0].ID)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@example.com", ""))
	list, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123"))
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin@example.com", "admin123"))

	list, err = svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "admin@example.com", list[0].Email)
}
