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

var _ repository.LogbookRepository = (*LogbookRepo)(nil)

// LogbookRepo bitácora sobre PostgreSQL.
type LogbookRepo struct {
	q Querier
}

// NewLogbookRepository construye el adaptador.
func NewLogbookRepository(q Querier) *LogbookRepo {
	return &LogbookRepo{q: q}
}

const logColumns = `id, project_id, title, body, date, created_by, created_at, updated_at`

func scanLogEntry(row pgx.Row) (*entity.LogEntry, error) {
	var e entity.LogEntry
	if err := row.Scan(&e.ID, &e.ProjectID, &e.Title, &e.Body, &e.Date, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *LogbookRepo) Create(ctx context.Context, e *entity.LogEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO logbook_entries (`+logColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ProjectID, e.Title, e.Body, e.Date, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create log entry: %w", err)
	}
	return nil
}

func (r *LogbookRepo) GetByID(ctx context.Context, id string) (*entity.LogEntry, error) {
	e, err := scanLogEntry(r.q.QueryRow(ctx, `SELECT `+logColumns+` FROM logbook_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get log entry: %w", err)
	}
	return e, nil
}

func (r *LogbookRepo) Update(ctx context.Context, e *entity.LogEntry) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE logbook_entries SET title = $2, body = $3, date = $4, updated_at = $5
		WHERE id = $1`, e.ID, e.Title, e.Body, e.Date, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update log entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LogbookRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM logbook_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete log entry: %w", err)
	}
	return nil
}

func (r *LogbookRepo) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*entity.LogEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+logColumns+` FROM logbook_entries
		WHERE project_id = $1 ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3`, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
