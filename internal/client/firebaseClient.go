package client

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// IDTokenClaims is the subset of a verified Google ID token the signin flow
// needs.
type IDTokenClaims struct {
	UID   string
	Email string
	Name  string
}

// IDTokenVerifier checks a Google-issued ID token and returns its claims.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*IDTokenClaims, error)
}

type firebaseVerifier struct {
	auth *auth.Client
}

// InitFirebaseVerifier builds a verifier from the ambient Google credentials
// (GOOGLE_APPLICATION_CREDENTIALS or the platform service account).
func InitFirebaseVerifier(ctx context.Context) (IDTokenVerifier, error) {
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}

	return &firebaseVerifier{auth: authClient}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*IDTokenClaims, error) {
	token, err := v.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	claims := &IDTokenClaims{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		claims.Name = name
	}
	return claims, nil
}
