package dto

// LoginRequest é o corpo do login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ExtendTokenRequest é o corpo da extensão de sessão
type ExtendTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// ForgotPasswordRequest é o corpo do pedido de reset de senha
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest é o corpo da troca de senha via token de reset
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}
