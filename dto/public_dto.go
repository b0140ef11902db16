package dto

type CreateDonationDTO struct {
	FirstName     string   `json:"firstName" binding:"required,min=1,max=20"`
	LastName      string   `json:"lastName" binding:"required,min=1,max=25"`
	Email         string   `json:"email" binding:"required,email"`
	EquipmentType string   `json:"equipmentType" binding:"required"`
	Message       string   `json:"message"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

type CreateMessageDTO struct {
	FirstName string   `json:"firstName" binding:"required,min=1,max=20"`
	LastName  string   `json:"lastName" binding:"required,min=1,max=25"`
	Email     string   `json:"email" binding:"required,email"`
	Message   string   `json:"message" binding:"required"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type SubscribeNewsletterDTO struct {
	Email     string   `json:"email" binding:"required,email"`
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName" binding:"required"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type UnsubscribeNewsletterDTO struct {
	Email string `json:"email" binding:"required,email"`
}
