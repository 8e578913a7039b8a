package shopify

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ssh-randy/photosynthesis/pkg/config"
)

var sessionSigningMethod = jwt.SigningMethodHS256

// SessionClaims is the App Bridge session token payload. The dest claim
// carries the shop's canonical URL; the audience must equal the app's API key.
type SessionClaims struct {
	Dest string `json:"dest"`
	jwt.RegisteredClaims
}

// ShopDomain strips the scheme from the dest claim, yielding the bare
// myshopify domain used as the tenant key.
func (c *SessionClaims) ShopDomain() string {
	dest := strings.TrimSpace(c.Dest)
	dest = strings.TrimPrefix(dest, "https://")
	dest = strings.TrimPrefix(dest, "http://")
	return strings.TrimSuffix(dest, "/")
}

// VerifySessionToken validates an App Bridge session token and returns its
// typed claims. The shop identity always comes from this token, never from
// the request body, so callers cannot spoof another shop's data.
func VerifySessionToken(cfg config.ShopifyConfig, tokenString string) (*SessionClaims, error) {
	if cfg.APISecret == "" {
		return nil, fmt.Errorf("shopify api secret is required")
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != sessionSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.APISecret), nil
		},
		jwt.WithValidMethods([]string{sessionSigningMethod.Alg()}),
		jwt.WithAudience(cfg.APIKey),
	)
	if err != nil {
		return nil, err
	}

	if claims.ShopDomain() == "" {
		return nil, fmt.Errorf("session token missing dest claim")
	}
	return claims, nil
}
