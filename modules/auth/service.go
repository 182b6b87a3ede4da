package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/example/taskflow/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrTokenRevoked is returned when a token was revoked by sign-out.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// SessionPublisher notifies the rest of the system about auth changes.
type SessionPublisher interface {
	PublishSignedIn(ctx context.Context, userID, email string)
	PublishSignedOut(ctx context.Context, userID, email string)
}

// AuthService handles authentication and profile business logic.
type AuthService struct {
	repo    *UserRepository
	hasher  *PasswordHasher
	jwt     *JWTManager
	revoker Revoker
	bus     SessionPublisher
}

// NewAuthService creates a new AuthService. revoker and bus may be nil,
// in which case sign-out only takes effect at token expiry and no
// session events are published.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager, revoker Revoker, bus SessionPublisher) *AuthService {
	return &AuthService{
		repo:    repo,
		hasher:  hasher,
		jwt:     jwt,
		revoker: revoker,
		bus:     bus,
	}
}

// Register creates a new user account with an empty profile.
func (s *AuthService) Register(_ context.Context, email, password string) (*domain.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	// bcrypt has a 72-byte input limit.
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user, returns tokens and announces the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.PublishSignedIn(ctx, user.ID, user.Email)
	}
	return pair, nil
}

// RefreshTokens generates new access and refresh tokens.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	if err := s.checkRevocation(ctx, claims.ID); err != nil {
		return nil, err
	}

	// Verify user still exists.
	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.generateTokenPair(user.ID, user.Email)
}

// ValidateToken validates an access token and returns claims.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	if err := s.checkRevocation(ctx, claims.ID); err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// SignOut revokes the presented access token for the rest of its
// lifetime and announces the sign-out.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return err
	}

	if s.revoker != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
			return fmt.Errorf("failed to revoke token: %w", err)
		}
	}

	if s.bus != nil {
		s.bus.PublishSignedOut(ctx, claims.UserID, claims.Email)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}

// GetProfile retrieves the user's profile.
func (s *AuthService) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	return s.repo.GetProfile(userID)
}

// UpdateProfile validates and stores the user's full name. A nil or
// blank name clears it.
func (s *AuthService) UpdateProfile(_ context.Context, userID string, fullName *string) (*domain.Profile, error) {
	name, err := domain.ValidateFullName(fullName)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateProfileName(userID, name)
}

// checkRevocation rejects tokens revoked by an earlier sign-out.
func (s *AuthService) checkRevocation(ctx context.Context, tokenID string) error {
	if s.revoker == nil {
		return nil
	}
	revoked, err := s.revoker.IsRevoked(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

// generateTokenPair generates both access and refresh tokens.
func (s *AuthService) generateTokenPair(userID, email string) (*domain.TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwt.AccessTokenDuration(),
		TokenType:    "Bearer",
	}, nil
}
