// api/middleware/identity.go
package middleware

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anish-goyal/finboard/api/config"
	fin_errors "github.com/anish-goyal/finboard/api/errors"
	logger "github.com/anish-goyal/finboard/api/logging"
)

// The identity provider owns authentication and role claims; this middleware
// only resolves WHO the caller is and puts the identity on the context. The
// canonical guard downstream consumes nothing but that identity string.

type JSONWebKey struct {
	Kty string `json:"kty"`
	E   string `json:"e"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
}

type Jwks struct {
	Keys []JSONWebKey `json:"keys"`
}

type IdentityClaims struct {
	jwt.StandardClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// fetchIdentityPublicKey fetches the signing key from the identity provider's
// JWKS endpoint.
func fetchIdentityPublicKey(jwksURL string) (*rsa.PublicKey, error) {
	resp, err := http.Get(jwksURL)
	if err != nil {
		logger.Error("Failed to fetch JWKS", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Received non-OK HTTP status from JWKS endpoint", zap.Int("statusCode", resp.StatusCode))
		return nil, fmt.Errorf("received non-OK HTTP status from JWKS endpoint: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var jwks Jwks
	if err := json.Unmarshal(body, &jwks); err != nil {
		return nil, err
	}

	if len(jwks.Keys) == 0 {
		return nil, fmt.Errorf("no keys found in JWKS")
	}

	key := jwks.Keys[0] // Assuming the first key is the one needed; consider more robust selection mechanisms
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes).Int64()

	return &rsa.PublicKey{N: n, E: int(e)}, nil
}

// Identity resolves the bearer token to a user identity and requires a
// tenant header on every request.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			logger.Warn("No Authorization token provided")
			c.JSON(http.StatusUnauthorized, gin.H{"error": fin_errors.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			logger.Error("Error parsing token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": fin_errors.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			logger.Warn("No tenant header provided", zap.String("userID", claims.Subject))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing X-Tenant-ID header"})
			c.Abort()
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("userName", claims.Name)
		c.Set("tenantID", tenantID)

		c.Next()
	}
}

func parseToken(tokenString string) (*IdentityClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	key, err := fetchIdentityPublicKey(config.GetString("auth.jwksURL"))
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*IdentityClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token or wrong claims type")
}
