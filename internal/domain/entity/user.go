package entity

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User es una credencial del sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt
	Role         string
}
