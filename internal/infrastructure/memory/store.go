// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORE_DRIVER=memory para desarrollo local sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuentas-api/internal/application/inventory"
	"github.com/jhoicas/Cuentas-api/internal/application/project"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository           = (*ProjectRepo)(nil)
	_ repository.MembershipRepository        = (*MembershipRepo)(nil)
	_ repository.InviteRepository            = (*InviteRepo)(nil)
	_ repository.InventoryItemRepository     = (*ItemRepo)(nil)
	_ repository.InventoryMovementRepository = (*MovementRepo)(nil)
	_ repository.LedgerRepository            = (*LedgerRepo)(nil)
	_ repository.LogbookRepository           = (*LogbookRepo)(nil)
	_ inventory.TxRunner                     = (*TxRunner)(nil)
	_ project.TxRunner                       = (*TxRunner)(nil)
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa transacciones, equivalente al bloqueo de fila

	projects    map[string]entity.Project
	members     map[string]entity.Membership // clave projectID/userID
	invites     map[string]entity.Invite
	items       map[string]entity.InventoryItem
	movements   []entity.InventoryMovement
	entries     map[string]entity.LedgerEntry
	adjustments map[string]entity.BalanceAdjustment
	logEntries  map[string]entity.LogEntry

	writes int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		projects:    map[string]entity.Project{},
		members:     map[string]entity.Membership{},
		invites:     map[string]entity.Invite{},
		items:       map[string]entity.InventoryItem{},
		entries:     map[string]entity.LedgerEntry{},
		adjustments: map[string]entity.BalanceAdjustment{},
		logEntries:  map[string]entity.LogEntry{},
	}
}

// Writes número de operaciones de escritura aplicadas (para verificar que un rechazo no persiste nada).
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *Store) Projects() *ProjectRepo { return &ProjectRepo{s: s} }
func (s *Store) Members() *MembershipRepo { return &MembershipRepo{s: s} }
func (s *Store) Invites() *InviteRepo { return &InviteRepo{s: s} }
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{s: s} }
func (s *Store) Logbook() *LogbookRepo { return &LogbookRepo{s: s} }
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

func memberKey(projectID, userID string) string { return projectID + "/" + userID }

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner serializa las funciones transaccionales. No hay rollback: los casos de uso
// validan todo antes de la primera escritura dentro de la transacción.
type TxRunner struct{ s *Store }

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	return fn(r.s.Items(), r.s.Movements())
}

// RunProject implementa project.TxRunner.
func (r *TxRunner) RunProject(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	memberRepo repository.MembershipRepository,
	inviteRepo repository.InviteRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	return fn(r.s.Projects(), r.s.Members(), r.s.Invites())
}

// ── Projects ──────────────────────────────────────────────────────────────────

// ProjectRepo proyectos en memoria.
type ProjectRepo struct{ s *Store }

func (r *ProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; ok {
		return domain.ErrConflict
	}
	r.s.projects[p.ID] = *p
	r.s.writes++
	return nil
}

func (r *ProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProjectRepo) Update(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.projects[p.ID] = *p
	r.s.writes++
	return nil
}

// Delete elimina el proyecto y, como ON DELETE CASCADE, todo lo que le pertenece.
func (r *ProjectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.projects, id)
	for k, m := range r.s.members {
		if m.ProjectID == id {
			delete(r.s.members, k)
		}
	}
	for k, i := range r.s.invites {
		if i.ProjectID == id {
			delete(r.s.invites, k)
		}
	}
	for k, it := range r.s.items {
		if it.ProjectID == id {
			delete(r.s.items, k)
		}
	}
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProjectID != id {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	for k, e := range r.s.entries {
		if e.ProjectID == id {
			delete(r.s.entries, k)
		}
	}
	for k, a := range r.s.adjustments {
		if a.ProjectID == id {
			delete(r.s.adjustments, k)
		}
	}
	for k, l := range r.s.logEntries {
		if l.ProjectID == id {
			delete(r.s.logEntries, k)
		}
	}
	r.s.writes++
	return nil
}

func (r *ProjectRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.ProjectMembership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.ProjectMembership
	for _, m := range r.s.members {
		if m.UserID != userID {
			continue
		}
		if p, ok := r.s.projects[m.ProjectID]; ok {
			list = append(list, &entity.ProjectMembership{Project: p, Role: m.Role})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Project.CreatedAt.After(list[j].Project.CreatedAt)
	})
	return page(list, limit, offset), nil
}

// ── Members ───────────────────────────────────────────────────────────────────

// MembershipRepo miembros en memoria.
type MembershipRepo struct{ s *Store }

func (r *MembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := memberKey(m.ProjectID, m.UserID)
	if _, ok := r.s.members[key]; ok {
		return domain.ErrConflict
	}
	r.s.members[key] = *m
	r.s.writes++
	return nil
}

func (r *MembershipRepo) Get(_ context.Context, projectID, userID string) (*entity.Membership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.members[memberKey(projectID, userID)]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MembershipRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Membership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Membership
	for _, m := range r.s.members {
		if m.ProjectID == projectID {
			m := m
			list = append(list, &m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *MembershipRepo) UpdateRole(_ context.Context, projectID, userID string, role access.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := memberKey(projectID, userID)
	m, ok := r.s.members[key]
	if !ok {
		return domain.ErrNotFound
	}
	m.Role = role
	r.s.members[key] = m
	r.s.writes++
	return nil
}

func (r *MembershipRepo) Delete(_ context.Context, projectID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.members, memberKey(projectID, userID))
	r.s.writes++
	return nil
}

// ── Invites ───────────────────────────────────────────────────────────────────

// InviteRepo invitaciones en memoria.
type InviteRepo struct{ s *Store }

func (r *InviteRepo) Create(_ context.Context, inv *entity.Invite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invites {
		if existing.Prefix == inv.Prefix {
			return domain.ErrConflict
		}
	}
	r.s.invites[inv.ID] = *inv
	r.s.writes++
	return nil
}

func (r *InviteRepo) GetByID(_ context.Context, id string) (*entity.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invites[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InviteRepo) GetByPrefix(_ context.Context, prefix string) (*entity.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.invites {
		if inv.Prefix == prefix {
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *InviteRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Invite
	for _, inv := range r.s.invites {
		if inv.ProjectID == projectID {
			inv := inv
			list = append(list, &inv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *InviteRepo) IncrementUses(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invites[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Uses++
	r.s.invites[id] = inv
	r.s.writes++
	return nil
}

func (r *InviteRepo) Revoke(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invites[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.RevokedAt = &at
	r.s.invites[id] = inv
	r.s.writes++
	return nil
}

// ── Inventory ─────────────────────────────────────────────────────────────────

// ItemRepo artículos en memoria.
type ItemRepo struct{ s *Store }

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	r.s.writes++
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// GetForUpdate equivale a GetByID: el bloqueo lo da TxRunner.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.items[item.ID] = *item
	r.s.writes++
	return nil
}

func (r *ItemRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.DeletedAt = &at
	r.s.items[id] = it
	r.s.writes++
	return nil
}

func (r *ItemRepo) ListByProject(_ context.Context, projectID string, limit, offset int) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.InventoryItem
	for _, it := range r.s.items {
		if it.ProjectID == projectID && it.DeletedAt == nil {
			it := it
			list = append(list, &it)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// MovementRepo historial de movimientos en memoria (solo anexado).
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	r.s.writes++
	return nil
}

func (r *MovementRepo) ListByItem(_ context.Context, itemID string) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			m := m
			list = append(list, &m)
		}
	}
	return list, nil
}

func (r *MovementRepo) ListByProject(_ context.Context, projectID string) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProjectID == projectID {
			m := m
			list = append(list, &m)
		}
	}
	return list, nil
}

// ── Ledger ────────────────────────────────────────────────────────────────────

// LedgerRepo ingresos, gastos y ajustes en memoria.
type LedgerRepo struct{ s *Store }

func (r *LedgerRepo) CreateEntry(_ context.Context, e *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.entries[e.ID] = *e
	r.s.writes++
	return nil
}

func (r *LedgerRepo) GetEntry(_ context.Context, id string) (*entity.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *LedgerRepo) UpdateEntry(_ context.Context, e *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.entries[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.entries[e.ID] = *e
	r.s.writes++
	return nil
}

func (r *LedgerRepo) DeleteEntry(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.entries, id)
	r.s.writes++
	return nil
}

func (r *LedgerRepo) ListEntries(_ context.Context, projectID string, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.ProjectID != projectID {
			continue
		}
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		e := e
		list = append(list, &e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return page(list, f.Limit, f.Offset), nil
}

func (r *LedgerRepo) CreateAdjustment(_ context.Context, a *entity.BalanceAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.adjustments[a.ID] = *a
	r.s.writes++
	return nil
}

func (r *LedgerRepo) GetAdjustment(_ context.Context, id string) (*entity.BalanceAdjustment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.adjustments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *LedgerRepo) DeleteAdjustment(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.adjustments, id)
	r.s.writes++
	return nil
}

func (r *LedgerRepo) ListAdjustments(_ context.Context, projectID string, limit, offset int) ([]*entity.BalanceAdjustment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.BalanceAdjustment
	for _, a := range r.s.adjustments {
		if a.ProjectID == projectID {
			a := a
			list = append(list, &a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return page(list, limit, offset), nil
}

func (r *LedgerRepo) Totals(_ context.Context, projectID string) (repository.LedgerTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t := repository.LedgerTotals{Income: decimal.Zero, Expense: decimal.Zero, Adjustments: decimal.Zero}
	for _, e := range r.s.entries {
		if e.ProjectID != projectID {
			continue
		}
		switch e.Kind {
		case entity.EntryKindIncome:
			t.Income = t.Income.Add(e.Amount)
		case entity.EntryKindExpense:
			t.Expense = t.Expense.Add(e.Amount)
		}
	}
	for _, a := range r.s.adjustments {
		if a.ProjectID == projectID {
			t.Adjustments = t.Adjustments.Add(a.Amount)
		}
	}
	return t, nil
}

// ── Logbook ───────────────────────────────────────────────────────────────────

// LogbookRepo bitácora en memoria.
type LogbookRepo struct{ s *Store }

func (r *LogbookRepo) Create(_ context.Context, e *entity.LogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logEntries[e.ID] = *e
	r.s.writes++
	return nil
}

func (r *LogbookRepo) GetByID(_ context.Context, id string) (*entity.LogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.logEntries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *LogbookRepo) Update(_ context.Context, e *entity.LogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.logEntries[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.logEntries[e.ID] = *e
	r.s.writes++
	return nil
}

func (r *LogbookRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.logEntries, id)
	r.s.writes++
	return nil
}

func (r *LogbookRepo) ListByProject(_ context.Context, projectID string, limit, offset int) ([]*entity.LogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.LogEntry
	for _, e := range r.s.logEntries {
		if e.ProjectID == projectID {
			e := e
			list = append(list, &e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return page(list, limit, offset), nil
}
