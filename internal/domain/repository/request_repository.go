package repository

import (
	"time"

	"github.com/assetverse/assetverse-api/internal/domain/entity"
)

// RequestFilter criterios de listado de solicitudes.
type RequestFilter struct {
	RequesterEmail string
	HREmail        string
	Status         string
	Search         string // por nombre/email del solicitante (listado HR) o nombre del activo (listado propio)
	AssetType      string
	Limit          int
	Offset         int
}

// RequestRepository define el puerto de persistencia para Request.
type RequestRepository interface {
	Create(request *entity.Request) error
	GetByID(id string) (*entity.Request, error)
	// GetForUpdate bloquea la fila de la solicitud; usar dentro de una tx.
	GetForUpdate(id string) (*entity.Request, error)
	UpdateStatus(id, status string, approvalDate *time.Time) error
	ListByRequester(filter RequestFilter) ([]*entity.Request, error)
	ListByHR(filter RequestFilter) ([]*entity.Request, error)
	// ListApprovedPair solicitudes aprobadas entre un empleado y un HR (para la remoción en cascada).
	ListApprovedPair(requesterEmail, hrEmail string) ([]*entity.Request, error)
	CountApprovedPair(requesterEmail, hrEmail string) (int, error)
}
