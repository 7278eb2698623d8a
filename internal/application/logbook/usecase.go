// Package logbook contiene los casos de uso de la bitácora del proyecto.
package logbook

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

// LogbookUseCase notas fechadas del proyecto.
type LogbookUseCase struct {
	repo repository.LogbookRepository
}

// NewLogbookUseCase construye el caso de uso.
func NewLogbookUseCase(repo repository.LogbookRepository) *LogbookUseCase {
	return &LogbookUseCase{repo: repo}
}

// Create agrega una nota (requiere write).
func (uc *LogbookUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateLogEntryRequest) (*dto.LogEntryResponse, error) {
	if err := actor.Require(access.PermWrite); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	e := &entity.LogEntry{
		ID:        uuid.New().String(),
		ProjectID: actor.ProjectID,
		Title:     title,
		Body:      in.Body,
		Date:      date,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toResponse(e), nil
}

// Update modifica una nota (requiere write).
func (uc *LogbookUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateLogEntryRequest) (*dto.LogEntryResponse, error) {
	if err := actor.Require(access.PermWrite); err != nil {
		return nil, err
	}
	e, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title no puede quedar vacío", domain.ErrInvalidInput)
		}
		e.Title = title
	}
	if in.Body != nil {
		e.Body = *in.Body
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toResponse(e), nil
}

// Delete elimina una nota (requiere delete).
func (uc *LogbookUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := actor.Require(access.PermDelete); err != nil {
		return err
	}
	e, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, e.ID)
}

// List notas más recientes primero (requiere read).
func (uc *LogbookUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) (*dto.LogEntryListResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByProject(ctx, actor.ProjectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LogEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toResponse(e))
	}
	return &dto.LogEntryListResponse{Items: out, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (uc *LogbookUseCase) load(ctx context.Context, actor access.Actor, id string) (*entity.LogEntry, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.ProjectID != actor.ProjectID {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func toResponse(e *entity.LogEntry) *dto.LogEntryResponse {
	return &dto.LogEntryResponse{
		ID:        e.ID,
		ProjectID: e.ProjectID,
		Title:     e.Title,
		Body:      e.Body,
		Date:      e.Date,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
