package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Cuentas-api/internal/domain/inventory"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

// InventoryUseCase casos de uso de artículos y movimientos de inventario.
// Las cantidades por estado nunca se persisten: se derivan del historial en cada lectura.
type InventoryUseCase struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
	movRepo  repository.InventoryMovementRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
	}
}

// CreateItem crea un artículo sin stock (requiere write).
func (uc *InventoryUseCase) CreateItem(ctx context.Context, actor access.Actor, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := actor.Require(access.PermWrite); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if err := validateUnitValue(in.UnitValue); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		ProjectID:    actor.ProjectID,
		Name:         name,
		Description:  in.Description,
		UnitValue:    in.UnitValue,
		ThumbnailRef: in.ThumbnailRef,
		CreatedBy:    actor.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item, domaininv.Quantities{}), nil
}

// GetItem obtiene un artículo con su stock derivado (requiere read).
func (uc *InventoryUseCase) GetItem(ctx context.Context, actor access.Actor, itemID string) (*dto.ItemResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	item, err := uc.loadItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, domaininv.Derive(movements)), nil
}

// ListItems lista los artículos activos del proyecto con su stock (requiere read).
func (uc *InventoryUseCase) ListItems(ctx context.Context, actor access.Actor, limit, offset int) (*dto.ItemListResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByProject(ctx, actor.ProjectID, limit, offset)
	if err != nil {
		return nil, err
	}
	stock, err := uc.stockByItem(ctx, actor.ProjectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it, stock[it.ID]))
	}
	return &dto.ItemListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// stockByItem deriva las cantidades de todos los artículos del proyecto en una sola lectura.
func (uc *InventoryUseCase) stockByItem(ctx context.Context, projectID string) (map[string]domaininv.Quantities, error) {
	movements, err := uc.movRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]*entity.InventoryMovement)
	for _, m := range movements {
		grouped[m.ItemID] = append(grouped[m.ItemID], m)
	}
	stock := make(map[string]domaininv.Quantities, len(grouped))
	for itemID, log := range grouped {
		stock[itemID] = domaininv.Derive(log)
	}
	return stock, nil
}

// UpdateItem modifica nombre, descripción, valor o miniatura (requiere write).
func (uc *InventoryUseCase) UpdateItem(ctx context.Context, actor access.Actor, itemID string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := actor.Require(access.PermWrite); err != nil {
		return nil, err
	}
	item, err := uc.loadItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.UnitValue != nil {
		if err := validateUnitValue(in.UnitValue); err != nil {
			return nil, err
		}
		item.UnitValue = in.UnitValue
	}
	if in.ThumbnailRef != nil {
		item.ThumbnailRef = *in.ThumbnailRef
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, domaininv.Derive(movements)), nil
}

// DeleteItem elimina (lógicamente) un artículo (requiere delete).
// Sus movimientos se conservan como historial auditable.
func (uc *InventoryUseCase) DeleteItem(ctx context.Context, actor access.Actor, itemID string) error {
	if err := actor.Require(access.PermDelete); err != nil {
		return err
	}
	item, err := uc.loadItem(ctx, actor, itemID)
	if err != nil {
		return err
	}
	return uc.itemRepo.SoftDelete(ctx, item.ID, time.Now())
}

// CreateMovement valida y registra un traslado de unidades entre estados (requiere write).
//
// Cantidad y transición se validan antes de tocar la BD. Dentro de la transacción se
// bloquea la fila del artículo (SELECT FOR UPDATE), se deriva el stock del historial
// completo y se verifica el saldo del estado origen; si algo falla no se inserta nada.
func (uc *InventoryUseCase) CreateMovement(ctx context.Context, actor access.Actor, itemID string, in dto.CreateMovementRequest) (*dto.CreateMovementResponse, error) {
	if err := actor.Require(access.PermWrite); err != nil {
		return nil, err
	}
	quantity, err := domaininv.NormalizeQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	from := domaininv.State(strings.ToLower(strings.TrimSpace(in.FromState)))
	to := domaininv.State(strings.ToLower(strings.TrimSpace(in.ToState)))
	if err := domaininv.ValidateTransition(from, to); err != nil {
		return nil, err
	}

	var out *dto.CreateMovementResponse
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.ProjectID != actor.ProjectID || item.Deleted() {
			return domain.ErrNotFound
		}
		log, err := movRepo.ListByItem(ctx, item.ID)
		if err != nil {
			return err
		}
		if _, err := domaininv.Apply(domaininv.Derive(log), quantity, from, to); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:        uuid.New().String(),
			ProjectID: actor.ProjectID,
			ItemID:    item.ID,
			Quantity:  quantity,
			FromState: string(from),
			ToState:   string(to),
			Note:      strings.TrimSpace(in.Note),
			CreatedBy: actor.UserID,
			CreatedAt: time.Now(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		out = &dto.CreateMovementResponse{
			Movement: toMovementResponse(mov),
			Stock:    toStockDTO(domaininv.Derive(append(log, mov))),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovements devuelve el historial del artículo, incluso si fue eliminado (requiere read).
func (uc *InventoryUseCase) ListMovements(ctx context.Context, actor access.Actor, itemID string) ([]dto.MovementResponse, error) {
	if err := actor.Require(access.PermRead); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ProjectID != actor.ProjectID {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// loadItem obtiene un artículo activo del proyecto del actor.
func (uc *InventoryUseCase) loadItem(ctx context.Context, actor access.Actor, itemID string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ProjectID != actor.ProjectID || item.Deleted() {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func validateUnitValue(v *decimal.Decimal) error {
	if v != nil && v.IsNegative() {
		return fmt.Errorf("%w: unit_value no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func toStockDTO(q domaininv.Quantities) dto.StockDTO {
	return dto.StockDTO{Bodega: q.Bodega, Uso: q.Uso, Gastado: q.Gastado}
}

func toItemResponse(it *entity.InventoryItem, q domaininv.Quantities) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           it.ID,
		ProjectID:    it.ProjectID,
		Name:         it.Name,
		Description:  it.Description,
		UnitValue:    it.UnitValue,
		ThumbnailRef: it.ThumbnailRef,
		Stock:        toStockDTO(q),
		CreatedBy:    it.CreatedBy,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Quantity:  m.Quantity,
		FromState: m.FromState,
		ToState:   m.ToState,
		Note:      m.Note,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
