package dto

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type SetPasswordDTO struct {
	Password string `json:"password" binding:"required,min=8"`
}

type ChangeEmailDTO struct {
	Email string `json:"email" binding:"required,email"`
}
