package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleVendedor   = "vendedor"
	RoleProducao   = "producao"
	RoleLogistica  = "logistica"
	RoleFinanceiro = "financeiro"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleVendedor, RoleProducao, RoleLogistica, RoleFinanceiro:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Organization).
type User struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	Email          string    `db:"email"`
	PasswordHash   string    `db:"password_hash"` // bcrypt
	Name           string    `db:"name"`
	Role           string    `db:"role"`
	Status         string    `db:"status"` // active, inactive
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
