package entity

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

// User representa un operador del sistema.
type User struct {
	ID           string
	Name         string
	Username     string
	Role         string // ADMIN | OPERATOR
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
}
