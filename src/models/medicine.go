package models

import (
	"medifinder/src/types"
	"time"
)

type Medicine struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	Name        string            `gorm:"index" json:"name"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	PharmacyID  uint              `json:"pharmacy_id"`
	Price       float64           `json:"price"`
	Stock       types.StockStatus `gorm:"default:'Available'" json:"stock"`
	Quantity    int               `gorm:"default:0" json:"quantity"`
	ExpiryDate  *time.Time        `json:"expiry_date,omitempty"`

	Pharmacy Pharmacy `json:"pharmacy,omitempty"`

	types.Timestamps
}
