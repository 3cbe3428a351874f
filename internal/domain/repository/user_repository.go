package repository

import "github.com/assetverse/assetverse-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	ListByEmails(emails []string) ([]*entity.User, error)
	// AdjustEmployeeCount suma delta a current_employees sin bajar de cero.
	AdjustEmployeeCount(email string, delta int) error
	// UpdateSubscription fija el límite y el nombre del paquete tras un pago verificado.
	UpdateSubscription(email string, packageLimit int, subscription string) error
}
