package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo historial de movimientos (solo inserción) sobre PostgreSQL.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, project_id, item_id, quantity, from_state, to_state, note, created_by, created_at`

// Create persiste un movimiento ya validado por la máquina de estados.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.ProjectID, m.ItemID, m.Quantity, m.FromState, m.ToState,
		nullable(m.Note), m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByItem historial completo del artículo en orden de registro.
func (r *InventoryMovementRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `
		SELECT `+movementColumns+` FROM inventory_movements
		WHERE item_id = $1 ORDER BY created_at, id`, itemID)
}

// ListByProject historial de todos los artículos del proyecto (derivación de stock en listados).
func (r *InventoryMovementRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `
		SELECT `+movementColumns+` FROM inventory_movements
		WHERE project_id = $1 ORDER BY created_at, id`, projectID)
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, arg string) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var note *string
	if err := row.Scan(&m.ID, &m.ProjectID, &m.ItemID, &m.Quantity, &m.FromState, &m.ToState,
		&note, &m.CreatedBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Note = deref(note)
	return &m, nil
}
