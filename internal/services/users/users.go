package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	userEntity "github.com/benedict-erwin/weather-insight/internal/entities/users"
	"github.com/benedict-erwin/weather-insight/internal/repository"
	"github.com/benedict-erwin/weather-insight/pkg/apperror"
	"github.com/benedict-erwin/weather-insight/pkg/auth"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// ErrUserExists is returned when the email is already registered
var ErrUserExists = errors.New("user already exists")

// Repository is the storage the service needs
type Repository interface {
	Create(ctx context.Context, u *userEntity.User) error
	FindByEmail(ctx context.Context, email string) (*userEntity.User, error)
	FindAll(ctx context.Context) ([]userEntity.User, error)
}

type Service struct {
	repo  Repository
	clock clockwork.Clock
}

func NewService(repo Repository, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{repo: repo, clock: clock}
}

func existsError() error {
	return apperror.Validation("User already exists").
		WithCode(constants.CodeDuplicateResource).
		Wrap(ErrUserExists)
}

// Create registers a user with a bcrypt-hashed password
func (s *Service) Create(ctx context.Context, req *userEntity.CreateUserRequest) (*userEntity.User, error) {
	if len(req.Password) > auth.MaxPasswordBytes {
		return nil, apperror.Validation(fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}

	email := userEntity.NormalizeEmail(req.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, existsError()
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u := &userEntity.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hash,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, existsError()
		}
		return nil, apperror.Internal(fmt.Errorf("create user: %w", err))
	}

	logger.WithScope("users").Info().Str("user_id", u.ID).Msg("User created")
	return u, nil
}

// FindByEmail returns nil, nil when absent
func (s *Service) FindByEmail(ctx context.Context, email string) (*userEntity.User, error) {
	u, err := s.repo.FindByEmail(ctx, userEntity.NormalizeEmail(email))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func (s *Service) FindAll(ctx context.Context) ([]userEntity.User, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return list, nil
}

// EnsureDefaultAdmin creates the bootstrap account when it does not exist.
// An empty password disables seeding.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	log := logger.WithScope("users")

	if password == "" {
		log.Warn().Msg("Default admin password not set, skipping admin seeding")
		return nil
	}

	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Debug().Str("email", existing.Email).Msg("Default admin already exists")
		return nil
	}

	_, err = s.Create(ctx, &userEntity.CreateUserRequest{Email: email, Password: password})
	if err != nil && !errors.Is(err, ErrUserExists) {
		return err
	}
	log.Info().Str("email", userEntity.NormalizeEmail(email)).Msg("Default admin created")
	return nil
}
