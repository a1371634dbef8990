package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest entrada para registro de usuario.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN ASESOR SPAT CONSULTA ORGANIZACION"`
}

// AuthResponse salida con token JWT y el usuario autenticado.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RestorePasswordRequest entrada para restablecer contraseña.
type RestorePasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RestorePasswordResponse salida del restablecimiento. En modo desarrollo
// (correo sin configurar) Message incluye la contraseña temporal.
type RestorePasswordResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}
