package access

// Actor identidad y rol de quien invoca una operación sobre un proyecto.
// Se pasa explícitamente a cada caso de uso; no existe estado global de sesión.
type Actor struct {
	UserID    string
	ProjectID string
	Role      Role
}

// Can informa si el actor tiene el permiso.
func (a Actor) Can(perm Permission) bool {
	return HasPermission(a.Role, perm)
}

// Require devuelve *DeniedError si el actor no tiene el permiso.
// Es el chequeo autoritativo previo a cualquier escritura.
func (a Actor) Require(perm Permission) error {
	if !a.Can(perm) {
		return &DeniedError{Role: a.Role, Permission: perm}
	}
	return nil
}
