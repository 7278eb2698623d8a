package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo miembros de proyecto sobre PostgreSQL.
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)`,
		m.ProjectID, m.UserID, string(m.Role), m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

func (r *MembershipRepo) Get(ctx context.Context, projectID, userID string) (*entity.Membership, error) {
	m := entity.Membership{ProjectID: projectID, UserID: userID}
	var role string
	err := r.q.QueryRow(ctx, `
		SELECT role, created_at FROM project_members
		WHERE project_id = $1 AND user_id = $2`, projectID, userID,
	).Scan(&role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	m.Role = access.Role(role)
	return &m, nil
}

func (r *MembershipRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Membership, error) {
	rows, err := r.q.Query(ctx, `
		SELECT user_id, role, created_at FROM project_members
		WHERE project_id = $1 ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()
	var list []*entity.Membership
	for rows.Next() {
		m := entity.Membership{ProjectID: projectID}
		var role string
		if err := rows.Scan(&m.UserID, &role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.Role = access.Role(role)
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MembershipRepo) UpdateRole(ctx context.Context, projectID, userID string, role access.Role) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE project_members SET role = $3 WHERE project_id = $1 AND user_id = $2`,
		projectID, userID, string(role))
	if err != nil {
		return fmt.Errorf("update member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MembershipRepo) Delete(ctx context.Context, projectID, userID string) error {
	if _, err := r.q.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`, projectID, userID); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
