package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avlek/shopledger/internal/domain"
)

// UserUseCase handles registration and credential checks.
type UserUseCase struct {
	userRepo        UserRepository
	idGen           IDGenerator
	startingBalance int64
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator, startingBalance int64) *UserUseCase {
	return &UserUseCase{
		userRepo:        userRepo,
		idGen:           idGen,
		startingBalance: startingBalance,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a new user with a hashed password and the starting
// wallet balance.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:           uc.idGen.Generate(),
		Username:     input.Username,
		PasswordHash: hash,
		Balance:      uc.startingBalance,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index on username is the authority on duplicates; the
	// repository maps its violation to ErrDuplicateUsername.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return user, nil
}

// AuthenticateInput represents credential-check input.
type AuthenticateInput struct {
	Username string
	Password string
}

// Authenticate verifies user credentials. Any failure surfaces as
// ErrUnauthorized so callers cannot probe for registered usernames.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if err := verifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user.PasswordHash = ""

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
