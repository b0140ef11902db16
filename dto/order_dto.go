package dto

import "time"

type CreateOrderDTO struct {
	ClientID    string     `json:"clientId" binding:"required,objectid"`
	EquipmentID string     `json:"equipmentId" binding:"required,objectid"`
	TotalPrice  float64    `json:"totalPrice" binding:"required,gte=0"`
	IsRent      bool       `json:"isRent"`
	RentExpiry  *time.Time `json:"rentExpiry,omitempty"`
}

type UpdateOrderDTO struct {
	TotalPrice float64    `json:"totalPrice" binding:"required,gte=0"`
	IsRent     bool       `json:"isRent"`
	RentExpiry *time.Time `json:"rentExpiry,omitempty"`
}
