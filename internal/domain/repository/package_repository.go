package repository

import "github.com/assetverse/assetverse-api/internal/domain/entity"

// PackageRepository define el puerto de persistencia para Package.
type PackageRepository interface {
	Create(pkg *entity.Package) error
	GetByID(id string) (*entity.Package, error)
	List() ([]*entity.Package, error)
	Count() (int, error)
}
