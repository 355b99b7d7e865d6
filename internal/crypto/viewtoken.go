package crypto

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const viewIssuer = "rfext"

// ViewClaims identify who a view link was minted for.
type ViewClaims struct {
	MapID   string `json:"map"`
	UserID  string `json:"user"`
	Command string `json:"cmd"`
	jwt.RegisteredClaims
}

// ViewTokens mints and verifies the short-lived tokens embedded in the page
// links handed to the host (iframe, dialog and url commands).
type ViewTokens struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	ttl        time.Duration
	now        func() time.Time
}

// NewViewTokens derives an Ed25519 signing key from the master secret.
func NewViewTokens(masterSecret string, ttl time.Duration) (*ViewTokens, error) {
	seed, err := DeriveKey([]byte(masterSecret), "rfext view links")
	if err != nil {
		return nil, fmt.Errorf("derive view key: %w", err)
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	return &ViewTokens{
		privateKey: privateKey,
		publicKey:  privateKey.Public().(ed25519.PublicKey),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// Mint signs a token for the given map, user and command.
func (v *ViewTokens) Mint(mapID, userID, command string) (string, error) {
	now := v.now()
	claims := ViewClaims{
		MapID:   mapID,
		UserID:  userID,
		Command: command,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    viewIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(v.privateKey)
}

// Verify parses and checks a token produced by Mint.
func (v *ViewTokens) Verify(tokenString string) (*ViewClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ViewClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	}, jwt.WithIssuer(viewIssuer), jwt.WithTimeFunc(v.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*ViewClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
