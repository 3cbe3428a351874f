package dto

import "time"

// TeamMemberResponse colega descubierto vía afiliaciones compartidas.
type TeamMemberResponse struct {
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	ProfileImage string     `json:"profileImage,omitempty"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
}

// EmployeeResponse fila del roster de un HR, con conteo de activos aprobados.
type EmployeeResponse struct {
	AffiliationID string     `json:"affiliationId"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	ProfileImage  string     `json:"profileImage,omitempty"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	AssetCount    int        `json:"assetCount"`
	JoinedAt      time.Time  `json:"joinedAt"`
}
