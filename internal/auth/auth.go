// Package auth issues and verifies the bearer tokens that carry an
// authenticated principal into the attendance engine.  The engine itself
// trusts the resulting Principal without re-checking credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/proximark/server/internal/attendance/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Principal is the authenticated caller attached to each request.  For
// students the UserID doubles as the student profile id; likewise for
// faculty.
type Principal struct {
	UserID string
	Name   string
	Role   string // store.RoleFaculty | store.RoleStudent
}

type Service struct {
	users  store.UserStore
	secret []byte
	ttl    time.Duration
}

func NewService(users store.UserStore, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{users: users, secret: []byte(secret), ttl: ttl}
}

// Login checks the password against the stored bcrypt hash and returns a
// signed token plus the user.  Unknown emails and wrong passwords both
// produce ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, store.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return "", store.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", store.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", store.User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"name": u.Name,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", store.User{}, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

// Verify parses and validates a bearer token and returns its Principal.
func (s *Service) Verify(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || (role != store.RoleFaculty && role != store.RoleStudent) {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: sub, Name: name, Role: role}, nil
}
