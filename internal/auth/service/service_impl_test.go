package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/sahayahq/sahaya/internal/auth/domain"
	"github.com/sahayahq/sahaya/internal/auth/repository"
	"github.com/sahayahq/sahaya/internal/config"
	"github.com/sahayahq/sahaya/pkg/db"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	return New(Params{
		Config:      config.Config{SessionTTLHours: 72},
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repo,
		SessionRepo: sessionRepo,
	})
}

func validRegister() domain.RegisterRequest {
	return domain.RegisterRequest{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Phone:    "9876543210",
		Password: "correct horse",
	}
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("register issued no session token")
	}
	if result.Session.Metadata["email"] != "asha@example.com" {
		t.Fatalf("metadata email = %v", result.Session.Metadata["email"])
	}

	session, err := svc.Authenticate(context.Background(), result.RawToken)
	if err != nil {
		t.Fatalf("Authenticate after register: %v", err)
	}
	user, err := svc.GetUser(context.Background(), session.UserID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("stored email = %q", user.Email)
	}
	if user.PasswordHash == nil || *user.PasswordHash == "correct horse" {
		t.Fatal("password stored in the clear")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)

	bad := validRegister()
	bad.Email = "not an email"
	if _, err := svc.Register(context.Background(), bad); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad email: got %v", err)
	}

	short := validRegister()
	short.Password = "short"
	if _, err := svc.Register(context.Background(), short); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("short password: got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Register(context.Background(), validRegister()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), validRegister()); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("got %v, want ErrUserExists", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Register(context.Background(), validRegister()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "asha@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("login issued no session token")
	}

	if _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong password",
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}

	if _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(context.Background(), result.RawToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), result.RawToken); !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("got %v, want ErrSessionRevoked", err)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("empty token: got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "no-such-token"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("unknown token: got %v", err)
	}
}
