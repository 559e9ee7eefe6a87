package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestao-escolar/escolar-backend/internal/users"
	pkgauth "github.com/gestao-escolar/escolar-backend/pkg/auth"
	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/db"
	"github.com/gestao-escolar/escolar-backend/pkg/db/models"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
	"github.com/gestao-escolar/escolar-backend/pkg/security"
)

const minPasswordLen = 8

// LoginInput carries the credentials from the login form.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AddUserInput carries a new login created by an administrator.
type AddUserInput struct {
	Username string
	Password string
	Nivel    string
}

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	AddUser(ctx context.Context, input AddUserInput) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type service struct {
	repo   *users.Repository
	jwtCfg config.JWTConfig
	pwCfg  config.PasswordConfig
	logg   *logger.Logger
}

// NewService constructs an auth service.
func NewService(repo *users.Repository, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{repo: repo, jwtCfg: jwtCfg, pwCfg: pwCfg, logg: logg}, nil
}

// Login verifies the credentials and mints a session token. Unknown
// username and wrong password return the same error so the response does
// not reveal which accounts exist.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		if s.logg != nil {
			ctx = s.logg.WithUsername(ctx, username)
			s.logg.Warn(ctx, "auth.login: invalid credentials")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := pkgauth.GenerateAccessToken(s.jwtCfg, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Nivel:    user.Nivel,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sign token")
	}

	return &LoginResult{Token: token, User: user}, nil
}

// AddUser creates a login. The controller restricts this to administrators.
func (s *service) AddUser(ctx context.Context, input AddUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(input.Password) < minPasswordLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must have at least %d characters", minPasswordLen))
	}

	nivel, err := enums.ParseNivel(input.Nivel)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid access level")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, &models.User{
		Username: username,
		Password: hash,
		Nivel:    nivel,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return user, nil
}

func (s *service) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return rows, nil
}

// WarnIfNoUsers logs when the user table is empty so operators know the
// bootstrap command still has to run. The dashboard does not seed a
// default login on its own.
func WarnIfNoUsers(ctx context.Context, repo *users.Repository, logg *logger.Logger) {
	if repo == nil || logg == nil {
		return
	}
	count, err := repo.Count(ctx)
	if err != nil {
		logg.Warn(ctx, "auth.startup: could not count users")
		return
	}
	if count == 0 {
		logg.Warn(ctx, "auth.startup: no users exist, run the bootstrap-admin command to create one")
	}
}
