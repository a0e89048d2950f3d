package dto

// LoginRequest credenciales; se aceptan JSON o formulario OAuth2 (username/password).
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse token bearer emitido tras un login correcto.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ChangePasswordRequest body para POST /api/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}
