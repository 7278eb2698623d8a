package project

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

// MemberUseCase consulta y administración de miembros de un proyecto.
// El rol owner no se asigna, no se cambia y no se elimina.
type MemberUseCase struct {
	memberRepo repository.MembershipRepository
}

// NewMemberUseCase construye el caso de uso.
func NewMemberUseCase(memberRepo repository.MembershipRepository) *MemberUseCase {
	return &MemberUseCase{memberRepo: memberRepo}
}

// ListMembers lista los miembros del proyecto (requiere read).
func (uc *MemberUseCase) ListMembers(ctx context.Context, actor access.Actor) ([]dto.MemberResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	list, err := uc.memberRepo.ListByProject(ctx, actor.ProjectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MemberResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMemberResponse(m))
	}
	return out, nil
}

// ChangeRole asigna un rol asignable (admin, normal, view) a otro miembro (requiere manage_members).
func (uc *MemberUseCase) ChangeRole(ctx context.Context, actor access.Actor, targetUserID string, in dto.ChangeRoleRequest) (*dto.MemberResponse, error) {
	if err := actor.Require(access.PermManageMembers); err != nil {
		return nil, err
	}
	role, err := access.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if !role.IsAssignable() {
		return nil, fmt.Errorf("%w: el rol %s no es asignable", domain.ErrInvalidInput, role)
	}
	target, err := uc.loadMember(ctx, actor.ProjectID, targetUserID)
	if err != nil {
		return nil, err
	}
	if target.Role == access.RoleOwner {
		return nil, domain.ErrOwnerImmutable
	}
	if err := uc.memberRepo.UpdateRole(ctx, actor.ProjectID, targetUserID, role); err != nil {
		return nil, err
	}
	target.Role = role
	out := toMemberResponse(target)
	return &out, nil
}

// RemoveMember expulsa a un miembro (requiere manage_members). El owner no puede ser expulsado.
func (uc *MemberUseCase) RemoveMember(ctx context.Context, actor access.Actor, targetUserID string) error {
	if err := actor.Require(access.PermManageMembers); err != nil {
		return err
	}
	target, err := uc.loadMember(ctx, actor.ProjectID, targetUserID)
	if err != nil {
		return err
	}
	if target.Role == access.RoleOwner {
		return domain.ErrOwnerImmutable
	}
	return uc.memberRepo.Delete(ctx, actor.ProjectID, targetUserID)
}

// Leave el actor abandona el proyecto. El owner no puede abandonarlo.
func (uc *MemberUseCase) Leave(ctx context.Context, actor access.Actor) error {
	if actor.Role == access.RoleOwner {
		return domain.ErrOwnerImmutable
	}
	if _, err := uc.loadMember(ctx, actor.ProjectID, actor.UserID); err != nil {
		return err
	}
	return uc.memberRepo.Delete(ctx, actor.ProjectID, actor.UserID)
}

func (uc *MemberUseCase) loadMember(ctx context.Context, projectID, userID string) (*entity.Membership, error) {
	m, err := uc.memberRepo.Get(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func toMemberResponse(m *entity.Membership) dto.MemberResponse {
	return dto.MemberResponse{UserID: m.UserID, Role: string(m.Role), CreatedAt: m.CreatedAt}
}
