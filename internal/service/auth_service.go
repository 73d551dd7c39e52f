package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pokedex/internal/models"
	"pokedex/internal/repository"
	"pokedex/internal/security"
	"pokedex/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrTokenExpired       = errors.New("token expired")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo     *repository.UserRepository
	tokens       *security.TokenIssuer
	emailService *EmailService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenIssuer, emailService *EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokens:       tokens,
		emailService: emailService,
	}
}

// Register creates a new trainer account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	// Validate inputs
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	// Check if email already exists
	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Welcome email is best effort, registration succeeds either way
	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(context.Background(), user.Email, user.Name); err != nil {
			log.Printf("Warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login authenticates a trainer and issues an access token. The token's jti
// is stored as a session row so it can be revoked on logout.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	signed, tokenID, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if _, err := s.userRepo.CreateSession(tokenID, user.ID, expiresAt); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	return signed, user, nil
}

// Logout revokes the session backing an access token
func (s *AuthService) Logout(tokenID string) error {
	if err := s.userRepo.DeleteSession(tokenID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ValidateToken verifies a token string and returns the authenticated user.
// A token whose jti has no session row has been revoked.
func (s *AuthService) ValidateToken(tokenStr string) (*models.User, string, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return nil, "", err
	}

	session, err := s.userRepo.GetSession(claims.TokenID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, "", ErrTokenRevoked
	}
	if session.IsExpired() {
		// Clean up eagerly, the ticker would get it eventually
		_ = s.userRepo.DeleteSession(session.TokenID)
		return nil, "", ErrTokenExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", ErrTokenRevoked
	}

	return user, claims.TokenID, nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	count, err := s.userRepo.DeleteExpiredSessions()
	if err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	if count > 0 {
		log.Printf("Cleaned up %d expired sessions", count)
	}
	return nil
}

// StartSessionCleanup runs session cleanup on an interval until the context
// is cancelled
func (s *AuthService) StartSessionCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.CleanupExpiredSessions(); err != nil {
				log.Printf("Session cleanup error: %v", err)
			}
		}
	}
}
