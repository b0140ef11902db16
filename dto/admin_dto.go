package dto

type CreateAdminDTO struct {
	Name     string `json:"name" binding:"required,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type UpdateAdminDTO struct {
	Name  string `json:"name" binding:"required,max=30"`
	Phone string `json:"phone"`
}
