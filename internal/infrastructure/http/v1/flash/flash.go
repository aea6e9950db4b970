// Package flash carries one-shot status messages across a redirect in a
// signed cookie.
package flash

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// CookieName is the name of the flash cookie.
const CookieName = "stockmaster_flash"

// Categories map onto alert styles in the layout.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
)

// Message is a status line shown once on the next rendered page.
type Message struct {
	Category string `json:"cat"`
	Text     string `json:"msg"`
}

type claims struct {
	jwt.RegisteredClaims
	Message
}

// Store signs and verifies flash cookies.
type Store struct {
	key    []byte
	ttl    time.Duration
	secure bool
}

// NewStore derives the signing key from secret.
func NewStore(secret string, secure bool) (*Store, error) {
	if secret == "" {
		return nil, fmt.Errorf("flash: empty secret")
	}
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("stockmaster flash"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("flash: derive key: %w", err)
	}
	return &Store{key: key, ttl: 5 * time.Minute, secure: secure}, nil
}

// Set stores a message for the next request.
func (s *Store) Set(c *gin.Context, category, text string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Message: Message{Category: category, Text: text},
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return fmt.Errorf("sign flash: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, signed, int(s.ttl.Seconds()), "/", "", s.secure, true)
	return nil
}

// Success stores a success message.
func (s *Store) Success(c *gin.Context, text string) error {
	return s.Set(c, CategorySuccess, text)
}

// Danger stores an error message.
func (s *Store) Danger(c *gin.Context, text string) error {
	return s.Set(c, CategoryDanger, text)
}

// Pop returns the pending message and clears the cookie. Tampered or
// expired cookies are dropped silently.
func (s *Store) Pop(c *gin.Context) *Message {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", s.secure, true)

	var cl claims
	_, err = jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil
	}
	msg := cl.Message
	return &msg
}
