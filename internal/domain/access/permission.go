// Package access define el modelo de roles y permisos por proyecto.
//
// La tabla rolePermissions es la única fuente de verdad: ningún rol hereda de otro
// en tiempo de ejecución. Un rol desconocido no tiene ningún permiso.
package access

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Cuentas-api/internal/domain"
)

// Role rol de un usuario dentro de un proyecto.
type Role string

// Roles de proyecto.
const (
	RoleOwner  Role = "owner"  // creador del proyecto, único e intransferible
	RoleAdmin  Role = "admin"  // gestiona datos y miembros
	RoleNormal Role = "normal" // registra y edita datos
	RoleView   Role = "view"   // solo lectura
)

// Permission capacidad autorizable.
type Permission string

// Permisos.
const (
	PermRead          Permission = "read"
	PermWrite         Permission = "write"
	PermDelete        Permission = "delete"
	PermAdmin         Permission = "admin"
	PermManageMembers Permission = "manage_members"
)

var rolePermissions = map[Role]map[Permission]bool{
	RoleOwner: {
		PermRead: true, PermWrite: true, PermDelete: true, PermAdmin: true, PermManageMembers: true,
	},
	RoleAdmin: {
		PermRead: true, PermWrite: true, PermDelete: true, PermManageMembers: true,
	},
	RoleNormal: {
		PermRead: true, PermWrite: true,
	},
	RoleView: {
		PermRead: true,
	},
}

// AllRoles devuelve los roles conocidos, de mayor a menor privilegio.
func AllRoles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleNormal, RoleView}
}

// AllPermissions devuelve todos los permisos conocidos.
func AllPermissions() []Permission {
	return []Permission{PermRead, PermWrite, PermDelete, PermAdmin, PermManageMembers}
}

// HasPermission informa si el rol incluye el permiso. Roles desconocidos: siempre false.
func HasPermission(role Role, perm Permission) bool {
	return rolePermissions[role][perm]
}

// CanView equivale a HasPermission(role, PermRead).
func CanView(role Role) bool { return HasPermission(role, PermRead) }

// CanEdit equivale a HasPermission(role, PermWrite).
func CanEdit(role Role) bool { return HasPermission(role, PermWrite) }

// CanDelete equivale a HasPermission(role, PermDelete).
func CanDelete(role Role) bool { return HasPermission(role, PermDelete) }

// CanManageProject equivale a HasPermission(role, PermAdmin).
func CanManageProject(role Role) bool { return HasPermission(role, PermAdmin) }

// CanManageMembers equivale a HasPermission(role, PermManageMembers).
func CanManageMembers(role Role) bool { return HasPermission(role, PermManageMembers) }

// AssignableRoles roles que se pueden asignar desde la gestión de miembros.
// owner nunca es asignable: se fija al crear el proyecto.
func AssignableRoles() []Role {
	return []Role{RoleAdmin, RoleNormal, RoleView}
}

// IsAssignable informa si el rol puede asignarse por invitación o cambio de rol.
func (r Role) IsAssignable() bool {
	for _, a := range AssignableRoles() {
		if a == r {
			return true
		}
	}
	return false
}

// Valid informa si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// ParseRole normaliza y valida un rol recibido como texto.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, s)
	}
	return r, nil
}

// Descripciones usadas en los mensajes de denegación.
var permissionActions = map[Permission]string{
	PermRead:          "ver este proyecto",
	PermWrite:         "crear o editar registros",
	PermDelete:        "eliminar registros",
	PermAdmin:         "administrar el proyecto",
	PermManageMembers: "gestionar miembros",
}

// DeniedError indica que el rol del actor no incluye el permiso requerido.
// errors.Is(err, domain.ErrForbidden) es true.
type DeniedError struct {
	Role       Role
	Permission Permission
}

func (e *DeniedError) Error() string {
	action, ok := permissionActions[e.Permission]
	if !ok {
		action = string(e.Permission)
	}
	return fmt.Sprintf("No tienes permisos para %s (rol %q)", action, e.Role)
}

func (e *DeniedError) Unwrap() error { return domain.ErrForbidden }
