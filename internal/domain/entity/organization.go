package entity

import "time"

// Organization representa una concretera/tenant del sistema. Toda fila de negocio lleva su ID.
type Organization struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Document  string    `db:"document"` // CNPJ
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Status    string    `db:"status"` // active, suspended
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Ref devuelve un puntero a s, o nil si s está vacío. Útil para columnas FK opcionales.
func Ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref devuelve el valor apuntado o "" si p es nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
