package interfaces

import "context"

// FederatedIdentity is the profile an external identity provider vouches for.
type FederatedIdentity struct {
	Email    string
	Name     string
	PhotoURL string
}

// TokenVerifier validates a provider-issued ID token.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*FederatedIdentity, error)
}
