package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gestao-escolar/escolar-backend/internal/users"
	pkgauth "github.com/gestao-escolar/escolar-backend/pkg/auth"
	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	pkgerrors "github.com/gestao-escolar/escolar-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	usuarios := `
CREATE TABLE IF NOT EXISTS usuarios (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  nivel TEXT NOT NULL DEFAULT 'Vendedor',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(usuarios).Error)
	return db
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "escolar-backend",
		ExpirationMinutes: 60,
	}
}

// Low-cost argon parameters keep the suite fast.
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newAuthService(t *testing.T) (Service, *users.Repository) {
	t.Helper()
	db := setupAuthTestDB(t)
	repo := users.NewRepository(db)
	svc, err := NewService(repo, testJWTConfig(), testPasswordConfig(), nil)
	require.NoError(t, err)
	return svc, repo
}

func TestAddUserAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.AddUser(ctx, AddUserInput{
		Username: "joana",
		Password: "segredo-forte",
		Nivel:    "vendedor",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.NivelVendedor, user.Nivel)
	assert.NotEqual(t, "segredo-forte", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$argon2id$"))

	result, err := svc.Login(ctx, LoginInput{Username: "joana", Password: "segredo-forte"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "joana", claims.Username)
	assert.Equal(t, enums.NivelVendedor, claims.Nivel)
}

func TestLoginWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, AddUserInput{Username: "joana", Password: "segredo-forte", Nivel: "Admin"})
	require.NoError(t, err)

	res1, wrongPw := svc.Login(ctx, LoginInput{Username: "joana", Password: "errada"})
	require.Error(t, wrongPw)
	assert.Nil(t, res1)

	res2, unknown := svc.Login(ctx, LoginInput{Username: "ninguem", Password: "qualquer"})
	require.Error(t, unknown)
	assert.Nil(t, res2)

	// Both failures carry the same code and message.
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(wrongPw).Code())
	assert.Equal(t, pkgerrors.As(wrongPw).Message(), pkgerrors.As(unknown).Message())
}

func TestAddUserRejectsWeakPasswordAndBadNivel(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, AddUserInput{Username: "joana", Password: "curta", Nivel: "Admin"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.AddUser(ctx, AddUserInput{Username: "joana", Password: "segredo-forte", Nivel: "Gerente"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAddUserDuplicateUsernameConflicts(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, AddUserInput{Username: "joana", Password: "segredo-forte", Nivel: "Admin"})
	require.NoError(t, err)

	_, err = svc.AddUser(ctx, AddUserInput{Username: "joana", Password: "outra-senha-ok", Nivel: "Vendedor"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestWarnIfNoUsersDoesNotPanic(t *testing.T) {
	_, repo := newAuthService(t)
	WarnIfNoUsers(context.Background(), repo, nil)
}
