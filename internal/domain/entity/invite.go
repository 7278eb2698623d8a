package entity

import (
	"time"

	"github.com/jhoicas/Cuentas-api/internal/domain/access"
)

// Invite código de invitación a un proyecto.
// El código visible es "<Prefix>-<secreto>"; solo se persiste el hash bcrypt del secreto.
type Invite struct {
	ID         string
	ProjectID  string
	Prefix     string
	SecretHash string
	Role       access.Role
	CreatedBy  string
	ExpiresAt  time.Time
	MaxUses    int // 0 = ilimitado
	Uses       int
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

// Usable informa si la invitación puede canjearse en el instante now.
func (i *Invite) Usable(now time.Time) bool {
	if i.RevokedAt != nil {
		return false
	}
	if !now.Before(i.ExpiresAt) {
		return false
	}
	return i.MaxUses == 0 || i.Uses < i.MaxUses
}
