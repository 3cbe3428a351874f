package usecase

import (
	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
	"github.com/assetverse/assetverse-api/internal/domain/repository"
)

// TeamUseCase lecturas sobre el registro de afiliaciones: "mi equipo" para
// empleados y el roster con conteos para un HR.
type TeamUseCase struct {
	affiliationRepo repository.AffiliationRepository
	userRepo        repository.UserRepository
	requestRepo     repository.RequestRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(
	affiliationRepo repository.AffiliationRepository,
	userRepo repository.UserRepository,
	requestRepo repository.RequestRepository,
) *TeamUseCase {
	return &TeamUseCase{affiliationRepo: affiliationRepo, userRepo: userRepo, requestRepo: requestRepo}
}

// MyTeam devuelve los empleados que comparten al menos un tenant HR con el
// caller: unión de las afiliaciones de todos sus HRs, no una relación directa.
func (uc *TeamUseCase) MyTeam(email string) ([]dto.TeamMemberResponse, error) {
	mine, err := uc.affiliationRepo.ListByEmployee(email)
	if err != nil {
		return nil, err
	}
	if len(mine) == 0 {
		return []dto.TeamMemberResponse{}, nil
	}

	hrEmails := make([]string, 0, len(mine))
	seenHR := make(map[string]bool, len(mine))
	for _, a := range mine {
		if !seenHR[a.HREmail] {
			seenHR[a.HREmail] = true
			hrEmails = append(hrEmails, a.HREmail)
		}
	}

	team, err := uc.affiliationRepo.ListByHREmails(hrEmails)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(team))
	seen := make(map[string]bool, len(team))
	for _, a := range team {
		if !seen[a.EmployeeEmail] {
			seen[a.EmployeeEmail] = true
			emails = append(emails, a.EmployeeEmail)
		}
	}

	users, err := uc.userRepo.ListByEmails(emails)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeamMemberResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.TeamMemberResponse{
			Email:        u.Email,
			Name:         u.Name,
			Role:         u.Role,
			ProfileImage: u.ProfileImage,
			DateOfBirth:  u.DateOfBirth,
		})
	}
	return out, nil
}

// EmployeesOf devuelve el roster de un HR con el conteo de solicitudes
// aprobadas por empleado.
func (uc *TeamUseCase) EmployeesOf(hrEmail string) ([]dto.EmployeeResponse, error) {
	affiliations, err := uc.affiliationRepo.ListByHR(hrEmail)
	if err != nil {
		return nil, err
	}
	if len(affiliations) == 0 {
		return []dto.EmployeeResponse{}, nil
	}

	emails := make([]string, 0, len(affiliations))
	byEmail := make(map[string]*entity.Affiliation, len(affiliations))
	for _, a := range affiliations {
		emails = append(emails, a.EmployeeEmail)
		byEmail[a.EmployeeEmail] = a
	}
	users, err := uc.userRepo.ListByEmails(emails)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]*entity.User, len(users))
	for _, u := range users {
		profiles[u.Email] = u
	}

	out := make([]dto.EmployeeResponse, 0, len(affiliations))
	for _, a := range affiliations {
		count, err := uc.requestRepo.CountApprovedPair(a.EmployeeEmail, hrEmail)
		if err != nil {
			return nil, err
		}
		row := dto.EmployeeResponse{
			AffiliationID: a.ID,
			Email:         a.EmployeeEmail,
			Name:          a.EmployeeName,
			AssetCount:    count,
			JoinedAt:      a.AffiliationDate,
		}
		if u := profiles[a.EmployeeEmail]; u != nil {
			row.Name = u.Name
			row.ProfileImage = u.ProfileImage
			row.DateOfBirth = u.DateOfBirth
		}
		out = append(out, row)
	}
	return out, nil
}
