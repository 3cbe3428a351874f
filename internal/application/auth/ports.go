package auth

import "context"

// IdentityVerifier es el contrato con el proveedor de identidad externo.
// Recibe el ID token opaco emitido al cliente y devuelve el par verificado
// (email, uid). Lo implementa infrastructure/identity (Firebase Admin).
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (email, uid string, err error)
}
