package dto

// RegisterRequest carries the signup form. Field names match the
// Portuguese-language client.
type RegisterRequest struct {
	Nome          string `json:"nome" binding:"required"`
	Telefone      string `json:"telefone" binding:"required"`
	Senha         string `json:"senha" binding:"required"`
	CodigoConvite string `json:"codigoConvite"`
}

// LoginRequest carries the login form
type LoginRequest struct {
	Telefone string `json:"telefone" binding:"required"`
	Senha    string `json:"senha" binding:"required"`
}

// AuthResponse returns the session token along with the account snapshot
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
