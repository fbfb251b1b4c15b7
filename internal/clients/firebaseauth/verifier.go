// Package firebaseauth verifies Firebase-issued ID tokens for federated
// registration and login.
package firebaseauth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/interfaces"
)

type Verifier struct {
	client *auth.Client
}

// New builds a verifier from a service-account JSON blob. With an empty blob
// the SDK falls back to application default credentials.
func New(ctx context.Context, credentialsJSON string) (*Verifier, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	return &Verifier{client: client}, nil
}

func (v *Verifier) Verify(ctx context.Context, idToken string) (*interfaces.FederatedIdentity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid identity token: %w", domain.ErrUnauthenticated)
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	if email == "" {
		return nil, fmt.Errorf("identity token has no email: %w", domain.ErrUnauthenticated)
	}

	return &interfaces.FederatedIdentity{
		Email:    email,
		Name:     name,
		PhotoURL: picture,
	}, nil
}
