package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/labtutor/labtutor/internal/config"
)

var (
	// ErrInvalidCredentials indicates an unknown user or wrong password.
	// Deliberately indistinguishable between the two cases.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken indicates a token that failed verification.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// account is a provisioned user with its bcrypt password hash.
type account struct {
	passwordHash []byte
	role         Role
}

// dummyHash is compared against for unknown usernames so lookup misses cost
// the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("labtutor-dummy"), bcrypt.DefaultCost)

// Authenticator verifies credentials against configured accounts and issues
// signed access tokens. Safe for concurrent use: the account table is
// immutable after construction.
type Authenticator struct {
	accounts map[string]account
	secret   []byte
	tokenTTL time.Duration
}

// New builds an Authenticator from configured user accounts. Plaintext
// config passwords are bcrypt-hashed here and discarded; only hashes are
// retained in memory.
func New(users []config.User, jwtSecret string, tokenTTL time.Duration) (*Authenticator, error) {
	accounts := make(map[string]account, len(users))
	for _, u := range users {
		role, err := ParseRole(u.Role)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %q: %w", u.Username, err)
		}
		accounts[u.Username] = account{passwordHash: hash, role: role}
	}

	return &Authenticator{
		accounts: accounts,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}, nil
}

// Authenticate checks a username/password pair and returns the principal.
func (a *Authenticator) Authenticate(username, password string) (Principal, error) {
	acct, ok := a.accounts[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Principal{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{Username: username, Role: acct.role}, nil
}

// claims is the JWT payload: subject plus role.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an access token for the principal.
func (a *Authenticator) IssueToken(p Principal) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: p.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token string and returns the embedded principal.
func (a *Authenticator) VerifyToken(tokenString string) (Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	role, err := ParseRole(c.Role)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{Username: c.Subject, Role: role}, nil
}
