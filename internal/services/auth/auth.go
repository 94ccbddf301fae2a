package auth

import (
	"context"
	"errors"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	authEntity "github.com/benedict-erwin/weather-insight/internal/entities/auth"
	userEntity "github.com/benedict-erwin/weather-insight/internal/entities/users"
	"github.com/benedict-erwin/weather-insight/pkg/apperror"
	"github.com/benedict-erwin/weather-insight/pkg/auth"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserFinder looks users up by email
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*userEntity.User, error)
}

type Service struct {
	users  UserFinder
	issuer *auth.TokenIssuer
}

func NewService(users UserFinder, issuer *auth.TokenIssuer) *Service {
	return &Service{users: users, issuer: issuer}
}

func invalidCredentials() error {
	return apperror.Authentication("Invalid credentials").
		WithCode(constants.CodeInvalidCredentials).
		Wrap(ErrInvalidCredentials)
}

// ValidateUser checks the password against the stored bcrypt hash
func (s *Service) ValidateUser(ctx context.Context, email, password string) (*userEntity.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, invalidCredentials()
	}

	ok, err := auth.CheckPassword(u.Password, password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, invalidCredentials()
	}
	return u, nil
}

// Login validates the credentials and issues an access token
func (s *Service) Login(ctx context.Context, email, password string) (*authEntity.LoginResponse, error) {
	log := logger.WithScope("auth")

	u, err := s.ValidateUser(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn().Str("email", userEntity.NormalizeEmail(email)).Msg("Login rejected")
		}
		return nil, err
	}

	token, expiresAt, err := s.issuer.Issue(u.ID, u.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	log.Info().Str("user_id", u.ID).Time("expires_at", expiresAt).Msg("Login succeeded")
	return &authEntity.LoginResponse{AccessToken: token}, nil
}

// PrincipalFrom maps verified claims to the request principal
func PrincipalFrom(claims *auth.Claims) authEntity.Principal {
	return authEntity.Principal{UserID: claims.Subject, Email: claims.Email}
}
