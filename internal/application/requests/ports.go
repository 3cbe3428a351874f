package requests

import (
	"context"

	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repositorios atados a una misma
// transacción del store. Commit si fn devuelve nil, Rollback si no.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		requestRepo repository.RequestRepository,
		assetRepo repository.AssetRepository,
		affiliationRepo repository.AffiliationRepository,
		userRepo repository.UserRepository,
	) error) error
}
