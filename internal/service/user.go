package service

import (
	"context"
	"strings"

	"github.com/questforge/grimoire/api/internal/model"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	List(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	// UpdateFields merges the given fields into the stored record and
	// returns the updated user, or nil if the id does not exist.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error)
	// Delete removes the record and returns it, or nil if the id does not
	// exist.
	Delete(ctx context.Context, id string) (*model.User, error)
	// AttachCharacter adds characterID to the user's character list.
	// Adding an id that is already present is a no-op.
	AttachCharacter(ctx context.Context, userID, characterID string) error
}

// UserService handles account operations: registration, login, and user CRUD.
type UserService struct {
	repo        UserRepository
	credentials *CredentialService
}

// UserServiceConfig holds configuration for the user service
type UserServiceConfig struct {
	UserRepo    UserRepository
	Credentials *CredentialService
}

// NewUserService creates a new user service
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{
		repo:        cfg.UserRepo,
		credentials: cfg.Credentials,
	}
}

// RegisterInput represents a registration request
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Gender   *string
}

// UserUpdateInput represents a partial user update. Nil fields are left
// untouched.
type UserUpdateInput struct {
	Username *string
	Email    *string
	Password *string
	Gender   *string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *model.User
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, dependency("fetch", "users", err)
	}
	return users, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, dependency("fetch", "user", err)
	}
	if user == nil {
		return nil, notFound("User")
	}
	return user, nil
}

// Register creates a new account, hashes the password, and issues a session
// token. Neither the email nor the username may belong to an existing user.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if err := validateUserCreate(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, dependency("fetch", "user", err)
	}
	if existing != nil {
		return nil, conflict("Email already exists.")
	}

	existing, err = s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, dependency("fetch", "user", err)
	}
	if existing != nil {
		return nil, conflict("Username already exists.")
	}

	hash, err := s.credentials.HashPassword(input.Password)
	if err != nil {
		return nil, dependency("create", "user", err)
	}

	user := &model.User{
		Username:   input.Username,
		Email:      input.Email,
		Hash:       &hash,
		Gender:     input.Gender,
		Characters: []string{},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, dependency("create", "user", err)
	}

	token, err := s.credentials.IssueToken(user)
	if err != nil {
		return nil, dependency("issue", "token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates by email and password and issues a session token.
// The failure message is identical for an unknown email and a wrong
// password, so callers cannot enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !IsWellFormedEmail(email) {
		return nil, invalidInput("Invalid email format")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, dependency("fetch", "user", err)
	}
	if user == nil || user.Hash == nil || !s.credentials.VerifyPassword(password, *user.Hash) {
		return nil, unauthorized("Incorrect credentials")
	}

	token, err := s.credentials.IssueToken(user)
	if err != nil {
		return nil, dependency("issue", "token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Update applies a partial merge to the user. A supplied password is
// re-hashed before it is persisted; plaintext never reaches the store.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*model.User, error) {
	if input.Email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*input.Email))
		input.Email = &normalized
	}
	if err := validateUserUpdate(input); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Username != nil {
		fields["username"] = *input.Username
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Gender != nil {
		fields["gender"] = *input.Gender
	}
	if input.Password != nil {
		hash, err := s.credentials.HashPassword(*input.Password)
		if err != nil {
			return nil, dependency("update", "user", err)
		}
		fields["hash"] = hash
	}

	updated, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, dependency("update", "user", err)
	}
	if updated == nil {
		return nil, notFound("User")
	}
	return updated, nil
}

// Delete removes the user and returns the deleted record. Characters owned
// by the user are not deleted or detached.
func (s *UserService) Delete(ctx context.Context, id string) (*model.User, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, dependency("delete", "user", err)
	}
	if deleted == nil {
		return nil, notFound("User")
	}
	return deleted, nil
}
