package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/avlek/shopledger/internal/adapter/repository/postgres"
	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/usecase"
	"github.com/avlek/shopledger/tests/testutil"
)

func newUserUseCase(testDB *testutil.TestDB) *usecase.UserUseCase {
	return usecase.NewUserUseCase(
		postgres.NewUserRepository(testDB.Pool),
		postgres.NewULIDGenerator(),
		100,
	)
}

func TestRegister_AndAuthenticate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	userUC := newUserUseCase(testDB)

	user, err := userUC.Register(ctx, usecase.RegisterInput{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Balance != 100 {
		t.Fatalf("expected starting balance 100, got %d", user.Balance)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}

	authed, err := userUC.Authenticate(ctx, usecase.AuthenticateInput{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}

	if _, err := userUC.Authenticate(ctx, usecase.AuthenticateInput{Username: "alice", Password: "wrong"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	userUC := newUserUseCase(testDB)

	if _, err := userUC.Register(ctx, usecase.RegisterInput{Username: "bob", Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := userUC.Register(ctx, usecase.RegisterInput{Username: "bob", Password: "hunter2hunter2"})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}
