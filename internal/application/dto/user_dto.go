package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token y datos del operador autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpsertUserRequest body para POST /api/users (solo ADMIN). Password vacío en
// un update conserva la credencial actual.
type UpsertUserRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"` // ADMIN | OPERATOR
	Password string `json:"password,omitempty"`
}

// UserResponse operador en respuestas (sin credenciales).
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"` // ADMIN | OPERATOR
}
