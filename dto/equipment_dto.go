package dto

type CreateEquipmentDTO struct {
	Name      string  `json:"name" binding:"required,min=2,max=80"`
	Type      string  `json:"type" binding:"required"`
	SerialID  int64   `json:"serialId" binding:"required"`
	SellPrice float64 `json:"sellPrice" binding:"required,gte=0"`
	RentPrice float64 `json:"rentPrice" binding:"required,gte=0"`
}

type UpdateEquipmentDTO struct {
	Name      *string  `json:"name,omitempty"`
	Type      *string  `json:"type,omitempty"`
	SellPrice *float64 `json:"sellPrice,omitempty"`
	RentPrice *float64 `json:"rentPrice,omitempty"`
}
