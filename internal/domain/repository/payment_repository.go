package repository

import "github.com/assetverse/assetverse-api/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	// Create devuelve domain.ErrDuplicate si session_id ya fue registrado.
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	GetBySessionID(sessionID string) (*entity.Payment, error)
	ListByHR(hrEmail string) ([]*entity.Payment, error)
}
