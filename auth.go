package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
)

// CredentialVerifier gates the admin endpoints. Two implementations: a
// shared-password check and an OIDC bearer-token check, picked by config.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) error
}

type PasswordVerifier struct {
	password string
}

func NewPasswordVerifier(password string) *PasswordVerifier {
	return &PasswordVerifier{password: password}
}

func (v *PasswordVerifier) Verify(_ context.Context, credential string) error {
	if subtle.ConstantTimeCompare([]byte(credential), []byte(v.password)) != 1 {
		return errors.New("invalid credentials")
	}
	return nil
}

type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, credential string) error {
	_, err := v.verifier.Verify(ctx, credential)
	return err
}

// newVerifier picks the verifier from config. With neither an OIDC issuer
// nor an admin password configured the admin routes run open, like the
// original deployment did.
func newVerifier(cfg Config) (CredentialVerifier, error) {
	if cfg.OIDCIssuer != "" {
		return NewOIDCVerifier(context.Background(), cfg.OIDCIssuer, cfg.OIDCClientID)
	}
	if cfg.AdminPassword != "" {
		return NewPasswordVerifier(cfg.AdminPassword), nil
	}
	return nil, nil
}

func AuthMiddleware(verifier CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}
		authHeader := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		credential := strings.TrimPrefix(authHeader, prefix)
		if err := verifier.Verify(c.Request.Context(), credential); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.Next()
	}
}
