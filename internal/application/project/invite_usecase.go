package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
)

const prefixLen = 8

// InviteConfig valores por defecto de las invitaciones (INVITE_EXPIRATION_HOURS, INVITE_MAX_USES).
type InviteConfig struct {
	Expiration time.Duration
	MaxUses    int // 0 = ilimitado
}

// InviteUseCase emisión, canje y revocación de códigos de invitación.
//
// El código visible tiene la forma PREFIJO-SECRETO. El prefijo identifica la invitación y
// se guarda en claro; del secreto solo se persiste el hash bcrypt, así que el código
// completo se muestra una única vez al crearlo.
type InviteUseCase struct {
	txRunner   TxRunner
	inviteRepo repository.InviteRepository
	cfg        InviteConfig
	now        func() time.Time
}

// NewInviteUseCase construye el caso de uso.
func NewInviteUseCase(txRunner TxRunner, inviteRepo repository.InviteRepository, cfg InviteConfig) *InviteUseCase {
	if cfg.Expiration <= 0 {
		cfg.Expiration = 7 * 24 * time.Hour
	}
	return &InviteUseCase{txRunner: txRunner, inviteRepo: inviteRepo, cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *InviteUseCase) WithClock(now func() time.Time) *InviteUseCase {
	uc.now = now
	return uc
}

// CreateInvite emite un código para unirse con el rol indicado (requiere manage_members).
func (uc *InviteUseCase) CreateInvite(ctx context.Context, actor access.Actor, in dto.CreateInviteRequest) (*dto.InviteResponse, error) {
	if err := actor.Require(access.PermManageMembers); err != nil {
		return nil, err
	}
	role := access.RoleNormal
	if strings.TrimSpace(in.Role) != "" {
		r, err := access.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}
	if !role.IsAssignable() {
		return nil, fmt.Errorf("%w: el rol %s no es asignable", domain.ErrInvalidInput, role)
	}
	if in.ExpiresInHours < 0 || in.MaxUses < 0 {
		return nil, fmt.Errorf("%w: expires_in_hours y max_uses no pueden ser negativos", domain.ErrInvalidInput)
	}
	expiration := uc.cfg.Expiration
	if in.ExpiresInHours > 0 {
		expiration = time.Duration(in.ExpiresInHours) * time.Hour
	}
	maxUses := uc.cfg.MaxUses
	if in.MaxUses > 0 {
		maxUses = in.MaxUses
	}

	prefix, secret := newInviteCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	inv := &entity.Invite{
		ID:         uuid.New().String(),
		ProjectID:  actor.ProjectID,
		Prefix:     prefix,
		SecretHash: string(hash),
		Role:       role,
		CreatedBy:  actor.UserID,
		ExpiresAt:  now.Add(expiration),
		MaxUses:    maxUses,
		CreatedAt:  now,
	}
	if err := uc.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	out := toInviteResponse(inv)
	out.Code = prefix + "-" + secret
	return out, nil
}

// ListInvites lista las invitaciones del proyecto sin el secreto (requiere manage_members).
func (uc *InviteUseCase) ListInvites(ctx context.Context, actor access.Actor) ([]dto.InviteResponse, error) {
	if err := actor.Require(access.PermManageMembers); err != nil {
		return nil, err
	}
	list, err := uc.inviteRepo.ListByProject(ctx, actor.ProjectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InviteResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInviteResponse(inv))
	}
	return out, nil
}

// RevokeInvite invalida una invitación (requiere manage_members). Revocar dos veces no es error.
func (uc *InviteUseCase) RevokeInvite(ctx context.Context, actor access.Actor, inviteID string) error {
	if err := actor.Require(access.PermManageMembers); err != nil {
		return err
	}
	inv, err := uc.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return err
	}
	if inv == nil || inv.ProjectID != actor.ProjectID {
		return domain.ErrNotFound
	}
	if inv.RevokedAt != nil {
		return nil
	}
	return uc.inviteRepo.Revoke(ctx, inv.ID, uc.now())
}

// JoinWithCode une a userID al proyecto de la invitación con el rol que esta indica.
// Devuelve ErrNotFound si el código no existe o el secreto no coincide, ErrInviteExpired si
// fue revocada, venció o agotó sus usos, y ErrConflict si el usuario ya es miembro.
func (uc *InviteUseCase) JoinWithCode(ctx context.Context, userID string, in dto.JoinProjectRequest) (*dto.MemberResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	prefix, secret, ok := splitCode(in.Code)
	if !ok {
		return nil, fmt.Errorf("%w: código de invitación mal formado", domain.ErrInvalidInput)
	}

	var joined *entity.Membership
	err := uc.txRunner.RunProject(ctx, func(
		_ repository.ProjectRepository,
		memberRepo repository.MembershipRepository,
		inviteRepo repository.InviteRepository,
	) error {
		inv, err := inviteRepo.GetByPrefix(ctx, prefix)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: invitación", domain.ErrNotFound)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(inv.SecretHash), []byte(secret)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return fmt.Errorf("%w: invitación", domain.ErrNotFound)
			}
			return err
		}
		now := uc.now()
		if !inv.Usable(now) {
			return domain.ErrInviteExpired
		}
		existing, err := memberRepo.Get(ctx, inv.ProjectID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ya eres miembro del proyecto", domain.ErrConflict)
		}
		m := &entity.Membership{ProjectID: inv.ProjectID, UserID: userID, Role: inv.Role, CreatedAt: now}
		if err := memberRepo.Create(ctx, m); err != nil {
			return err
		}
		if err := inviteRepo.IncrementUses(ctx, inv.ID); err != nil {
			return err
		}
		joined = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toMemberResponse(joined)
	return &out, nil
}

// newInviteCode genera prefijo (8 hex en mayúsculas) y secreto (32 hex) a partir de UUID v4.
func newInviteCode() (prefix, secret string) {
	prefix = strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:prefixLen])
	secret = strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix, secret
}

func splitCode(code string) (prefix, secret string, ok bool) {
	prefix, secret, ok = strings.Cut(strings.TrimSpace(code), "-")
	if !ok || len(prefix) != prefixLen || secret == "" {
		return "", "", false
	}
	return strings.ToUpper(prefix), strings.ToLower(secret), true
}

func toInviteResponse(inv *entity.Invite) *dto.InviteResponse {
	return &dto.InviteResponse{
		ID:        inv.ID,
		ProjectID: inv.ProjectID,
		Prefix:    inv.Prefix,
		Role:      string(inv.Role),
		ExpiresAt: inv.ExpiresAt,
		MaxUses:   inv.MaxUses,
		Uses:      inv.Uses,
		RevokedAt: inv.RevokedAt,
		CreatedBy: inv.CreatedBy,
		CreatedAt: inv.CreatedAt,
	}
}
