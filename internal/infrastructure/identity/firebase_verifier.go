// Package identity adapta Firebase Admin como proveedor de identidad:
// el cliente entrega el ID token emitido por Firebase y aquí se canjea por
// el par verificado (email, uid).
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appauth "github.com/assetverse/assetverse-api/internal/application/auth"
)

var _ appauth.IdentityVerifier = (*FirebaseVerifier)(nil)

// FirebaseVerifier implementa auth.IdentityVerifier sobre Firebase Admin.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier inicializa el SDK Admin. Con credentialsFile vacío usa
// las credenciales por defecto del entorno (GOOGLE_APPLICATION_CREDENTIALS).
func NewFirebaseVerifier(ctx context.Context, credentialsFile, projectID string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("inicializar Firebase Admin: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("cliente auth de Firebase: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify valida el ID token y devuelve el email y el uid del proveedor.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", fmt.Errorf("verificar ID token: %w", err)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", "", fmt.Errorf("el ID token no trae claim email")
	}
	return email, token.UID, nil
}
