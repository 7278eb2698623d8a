package project

import (
	"context"

	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios de proyecto,
// miembros e invitaciones atados a esa tx.
type TxRunner interface {
	RunProject(ctx context.Context, fn func(
		projectRepo repository.ProjectRepository,
		memberRepo repository.MembershipRepository,
		inviteRepo repository.InviteRepository,
	) error) error
}
