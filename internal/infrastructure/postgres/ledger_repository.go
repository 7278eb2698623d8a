package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo ingresos, gastos y ajustes sobre PostgreSQL.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const entryColumns = `id, project_id, kind, amount, category, description, date, created_by, created_at, updated_at`

func scanEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	if err := row.Scan(&e.ID, &e.ProjectID, &e.Kind, &e.Amount, &e.Category, &e.Description,
		&e.Date, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *LedgerRepo) CreateEntry(ctx context.Context, e *entity.LedgerEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledger_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.ProjectID, e.Kind, e.Amount, e.Category, e.Description,
		e.Date, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepo) GetEntry(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

func (r *LedgerRepo) UpdateEntry(ctx context.Context, e *entity.LedgerEntry) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE ledger_entries
		SET amount = $2, category = $3, description = $4, date = $5, updated_at = $6
		WHERE id = $1`,
		e.ID, e.Amount, e.Category, e.Description, e.Date, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LedgerRepo) DeleteEntry(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ledger entry: %w", err)
	}
	return nil
}

// ListEntries arma el WHERE con los filtros presentes, más recientes primero.
func (r *LedgerRepo) ListEntries(ctx context.Context, projectID string, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE project_id = $1`
	args := []any{projectID}
	pos := 2
	if f.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, f.Kind)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *LedgerRepo) CreateAdjustment(ctx context.Context, a *entity.BalanceAdjustment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO balance_adjustments (id, project_id, amount, reason, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ProjectID, a.Amount, a.Reason, a.Date, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create balance adjustment: %w", err)
	}
	return nil
}

func (r *LedgerRepo) GetAdjustment(ctx context.Context, id string) (*entity.BalanceAdjustment, error) {
	var a entity.BalanceAdjustment
	err := r.q.QueryRow(ctx, `
		SELECT id, project_id, amount, reason, date, created_by, created_at
		FROM balance_adjustments WHERE id = $1`, id,
	).Scan(&a.ID, &a.ProjectID, &a.Amount, &a.Reason, &a.Date, &a.CreatedBy, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance adjustment: %w", err)
	}
	return &a, nil
}

func (r *LedgerRepo) DeleteAdjustment(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM balance_adjustments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete balance adjustment: %w", err)
	}
	return nil
}

func (r *LedgerRepo) ListAdjustments(ctx context.Context, projectID string, limit, offset int) ([]*entity.BalanceAdjustment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, project_id, amount, reason, date, created_by, created_at
		FROM balance_adjustments WHERE project_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list balance adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.BalanceAdjustment
	for rows.Next() {
		var a entity.BalanceAdjustment
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Amount, &a.Reason, &a.Date, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan balance adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Totals suma por tipo en una sola consulta; COALESCE deja en cero los proyectos vacíos.
func (r *LedgerRepo) Totals(ctx context.Context, projectID string) (repository.LedgerTotals, error) {
	var t repository.LedgerTotals
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE project_id = $1 AND kind = 'income'), 0),
			COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE project_id = $1 AND kind = 'expense'), 0),
			COALESCE((SELECT SUM(amount) FROM balance_adjustments WHERE project_id = $1), 0)`,
		projectID,
	).Scan(&t.Income, &t.Expense, &t.Adjustments)
	if err != nil {
		return repository.LedgerTotals{}, fmt.Errorf("ledger totals: %w", err)
	}
	return t, nil
}
