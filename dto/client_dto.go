package dto

type CreateClientDTO struct {
	FirstName   string `json:"firstName" binding:"required,min=3,max=30"`
	LastName    string `json:"lastName" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=30"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Newsletter  bool   `json:"newsletter"`
	Note        string `json:"note" binding:"max=255"`
}

type UpdateClientDTO struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Newsletter  *bool  `json:"newsletter,omitempty"`
	Note        string `json:"note" binding:"max=255"`
}
