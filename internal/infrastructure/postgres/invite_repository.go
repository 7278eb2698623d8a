package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo códigos de invitación sobre PostgreSQL.
type InviteRepo struct {
	q Querier
}

// NewInviteRepository construye el adaptador.
func NewInviteRepository(q Querier) *InviteRepo {
	return &InviteRepo{q: q}
}

const inviteColumns = `id, project_id, prefix, secret_hash, role, created_by, expires_at, max_uses, uses, revoked_at, created_at`

func scanInvite(row pgx.Row) (*entity.Invite, error) {
	var inv entity.Invite
	var role string
	if err := row.Scan(&inv.ID, &inv.ProjectID, &inv.Prefix, &inv.SecretHash, &role, &inv.CreatedBy,
		&inv.ExpiresAt, &inv.MaxUses, &inv.Uses, &inv.RevokedAt, &inv.CreatedAt); err != nil {
		return nil, err
	}
	inv.Role = access.Role(role)
	return &inv, nil
}

func (r *InviteRepo) Create(ctx context.Context, inv *entity.Invite) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO project_invites (`+inviteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		inv.ID, inv.ProjectID, inv.Prefix, inv.SecretHash, string(inv.Role), inv.CreatedBy,
		inv.ExpiresAt, inv.MaxUses, inv.Uses, inv.RevokedAt, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create invite: %w", err)
	}
	return nil
}

func (r *InviteRepo) GetByID(ctx context.Context, id string) (*entity.Invite, error) {
	inv, err := scanInvite(r.q.QueryRow(ctx, `SELECT `+inviteColumns+` FROM project_invites WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

// GetByPrefix bloquea la fila: el canje cuenta usos dentro de la misma transacción.
func (r *InviteRepo) GetByPrefix(ctx context.Context, prefix string) (*entity.Invite, error) {
	inv, err := scanInvite(r.q.QueryRow(ctx, `
		SELECT `+inviteColumns+` FROM project_invites WHERE prefix = $1 FOR UPDATE`, prefix))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite by prefix: %w", err)
	}
	return inv, nil
}

func (r *InviteRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Invite, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+inviteColumns+` FROM project_invites
		WHERE project_id = $1 ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InviteRepo) IncrementUses(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE project_invites SET uses = uses + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment invite uses: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InviteRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE project_invites SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("revoke invite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
