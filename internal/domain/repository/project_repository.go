package repository

import (
	"context"

	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) error
	// ListByUser lista los proyectos donde el usuario es miembro, con su rol.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ProjectMembership, error)
}
