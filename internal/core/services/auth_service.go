package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAccessKey = errors.New("invalid access key")
)

// AuthService guards the single-user API with one configured access key.
// The key is hashed at startup so it never sits in memory in the clear.
type AuthService struct {
	accessKeyHash []byte
	tokens        *TokenService
}

func NewAuthService(accessKey string, tokens *TokenService) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(accessKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		accessKeyHash: hash,
		tokens:        tokens,
	}, nil
}

// Login exchanges the access key for a bearer token.
func (s *AuthService) Login(accessKey string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.accessKeyHash, []byte(accessKey)); err != nil {
		return "", ErrInvalidAccessKey
	}

	return s.tokens.GenerateToken()
}
