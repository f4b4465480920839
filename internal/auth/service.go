package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/barangay/docucheck/internal/core/events"
)

// UserRecord is what the repository returns for a staff account.
type UserRecord struct {
	ID           int64
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
}

type UserRepository interface {
	GetByName(name string) (*UserRecord, error)
	GetByID(userID int64) (*UserRecord, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bus            EventPublisher
	bcryptCost     int
}

// NewService creates a new auth service
func NewService(userRepo UserRepository, tokenGen TokenGenerator, bus EventPublisher, bcryptCost int) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bus:            bus,
		bcryptCost:     bcryptCost,
	}
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns the user with a fresh
// token pair. Unknown names and wrong passwords are indistinguishable
// to the caller.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*User, AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return nil, AuthTokens{}, err
	}

	rec, err := s.userRepo.GetByName(dto.Name)
	if err != nil {
		s.publishLogin(ctx, 0, dto.Name, "", false, "unknown user")
		return nil, AuthTokens{}, ErrInvalidCredentials
	}

	if err := VerifyPassword(rec.PasswordHash, dto.Password); err != nil {
		s.publishLogin(ctx, rec.ID, rec.Name, rec.Role, false, "wrong password")
		return nil, AuthTokens{}, ErrInvalidCredentials
	}

	if !rec.IsActive {
		s.publishLogin(ctx, rec.ID, rec.Name, rec.Role, false, "inactive account")
		return nil, AuthTokens{}, ErrUserInactive
	}

	userID := strconv.FormatInt(rec.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, rec.Name, rec.Role)
	if err != nil {
		return nil, AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, rec.Name, rec.Role)
	if err != nil {
		return nil, AuthTokens{}, err
	}

	s.publishLogin(ctx, rec.ID, rec.Name, rec.Role, true, "")

	return &User{ID: rec.ID, Name: rec.Name, Role: rec.Role}, AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens validates a refresh token and returns a new pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims.UserID, claims.Name, claims.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims.UserID, claims.Name, claims.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUser loads the redacted user view for a validated token.
func (s *Service) GetUser(userID int64) (*User, error) {
	rec, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if !rec.IsActive {
		return nil, ErrUserInactive
	}
	return &User{ID: rec.ID, Name: rec.Name, Role: rec.Role}, nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

func (s *Service) publishLogin(ctx context.Context, userID int64, name, role string, success bool, reason string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewLoginAttemptEvent(userID, name, role, success, reason))
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID, name, role string) (string, error) {
	return j.sign(userID, name, role, j.AccessTokenTTL, j.AccessTokenSecret)
}

// GenerateRefreshToken creates a new refresh token
func (j *JWTTokenGenerator) GenerateRefreshToken(userID, name, role string) (string, error) {
	return j.sign(userID, name, role, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, name, role string, ttl time.Duration, secret []byte) (string, error) {
	claims := &Claims{
		UserID: userID,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// Refresh tokens outlive the access TTL, so pick the secret by
		// the remaining lifetime.
		if claims, ok := token.Claims.(*Claims); ok && claims.ExpiresAt != nil {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
