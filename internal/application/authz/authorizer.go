// Package authz resuelve el rol de un usuario en un proyecto y construye el access.Actor
// que reciben los casos de uso.
package authz

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

// Authorizer consulta la membresía (project, user) en el almacén.
type Authorizer struct {
	members repository.MembershipRepository
}

// NewAuthorizer construye el resolvedor de actores.
func NewAuthorizer(members repository.MembershipRepository) *Authorizer {
	return &Authorizer{members: members}
}

// Actor devuelve el actor del usuario en el proyecto.
// Devuelve domain.ErrNotMember si el usuario no pertenece al proyecto.
func (a *Authorizer) Actor(ctx context.Context, projectID, userID string) (access.Actor, error) {
	if projectID == "" || userID == "" {
		return access.Actor{}, domain.ErrInvalidInput
	}
	m, err := a.members.Get(ctx, projectID, userID)
	if err != nil {
		return access.Actor{}, fmt.Errorf("authz: obtener membresía: %w", err)
	}
	if m == nil {
		return access.Actor{}, domain.ErrNotMember
	}
	return access.Actor{UserID: userID, ProjectID: projectID, Role: m.Role}, nil
}
