package service

import (
	"strings"

	"github.com/questforge/grimoire/api/internal/model"
	"github.com/questforge/grimoire/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt cost factor
	bcryptCost = 10

	// Minimum plaintext password length, enforced at creation and on
	// password change.
	minPasswordLength = 6
)

// CredentialService hashes and verifies passwords and issues session tokens.
// It is the only component that touches plaintext passwords; everything else
// sees bcrypt hashes.
type CredentialService struct {
	jwtService *jwt.Service
}

// NewCredentialService creates a new credential service
func NewCredentialService(jwtService *jwt.Service) *CredentialService {
	return &CredentialService{jwtService: jwtService}
}

// HashPassword produces a salted one-way hash of the plaintext.
func (s *CredentialService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
// bcrypt's comparison is constant-time.
func (s *CredentialService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IssueToken produces a bearer token embedding the user's id, username, and
// email, expiring after the configured duration.
func (s *CredentialService) IssueToken(user *model.User) (string, error) {
	return s.jwtService.Sign(jwt.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// ValidateToken verifies a bearer token and returns its claims. Malformed,
// expired, and badly signed tokens all fail; middleware only needs the
// valid/invalid signal.
func (s *CredentialService) ValidateToken(token string) (*jwt.Claims, error) {
	return s.jwtService.Validate(token)
}

// IsWellFormedEmail performs the structural email check used before any
// email is persisted: an "@" with at least one character before it, and a
// "." somewhere in the domain portion.
func IsWellFormedEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}
