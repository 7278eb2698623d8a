// Package project contiene los casos de uso de proyectos, miembros e invitaciones.
package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

const defaultCurrency = "COP"

// ProjectUseCase alta, consulta, edición y borrado de proyectos.
type ProjectUseCase struct {
	txRunner    TxRunner
	projectRepo repository.ProjectRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(txRunner TxRunner, projectRepo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{txRunner: txRunner, projectRepo: projectRepo}
}

// Create crea el proyecto y registra a userID como owner en la misma transacción.
func (uc *ProjectUseCase) Create(ctx context.Context, userID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	currency, err := normalizeCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Currency:    currency,
		OwnerID:     userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.RunProject(ctx, func(
		projectRepo repository.ProjectRepository,
		memberRepo repository.MembershipRepository,
		_ repository.InviteRepository,
	) error {
		if err := projectRepo.Create(ctx, p); err != nil {
			return err
		}
		return memberRepo.Create(ctx, &entity.Membership{
			ProjectID: p.ID,
			UserID:    userID,
			Role:      access.RoleOwner,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p, access.RoleOwner), nil
}

// Get devuelve el proyecto del actor (requiere read).
func (uc *ProjectUseCase) Get(ctx context.Context, actor access.Actor) (*dto.ProjectResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, actor.ProjectID)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p, actor.Role), nil
}

// ListForUser lista los proyectos donde userID es miembro, con su rol en cada uno.
func (uc *ProjectUseCase) ListForUser(ctx context.Context, userID string, limit, offset int) (*dto.ProjectListResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.projectRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, pm := range list {
		p := pm.Project
		out = append(out, *toProjectResponse(&p, pm.Role))
	}
	return &dto.ProjectListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update cambia nombre, descripción o moneda (requiere admin).
func (uc *ProjectUseCase) Update(ctx context.Context, actor access.Actor, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if err := actor.Require(access.PermAdmin); err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, actor.ProjectID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Currency != nil {
		currency, err := normalizeCurrency(*in.Currency)
		if err != nil {
			return nil, err
		}
		p.Currency = currency
	}
	p.UpdatedAt = time.Now()
	if err := uc.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p, actor.Role), nil
}

// Delete borra el proyecto con todo su contenido (requiere admin).
func (uc *ProjectUseCase) Delete(ctx context.Context, actor access.Actor) error {
	if err := actor.Require(access.PermAdmin); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor.ProjectID); err != nil {
		return err
	}
	return uc.projectRepo.Delete(ctx, actor.ProjectID)
}

func (uc *ProjectUseCase) load(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// normalizeCurrency valida un código ISO 4217 de tres letras; vacío equivale a COP.
func normalizeCurrency(s string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if c == "" {
		return defaultCurrency, nil
	}
	if len(c) != 3 {
		return "", fmt.Errorf("%w: currency debe ser un código ISO de 3 letras", domain.ErrInvalidInput)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency debe ser un código ISO de 3 letras", domain.ErrInvalidInput)
		}
	}
	return c, nil
}

func toProjectResponse(p *entity.Project, role access.Role) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Currency:    p.Currency,
		OwnerID:     p.OwnerID,
		Role:        string(role),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
