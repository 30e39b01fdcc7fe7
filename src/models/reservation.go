package models

import (
	"medifinder/src/types"
	"time"
)

type Reservation struct {
	ID            uint                    `gorm:"primarykey" json:"id"`
	MedicineID    uint                    `json:"medicine_id"`
	PharmacyID    uint                    `json:"pharmacy_id"`
	CustomerName  string                  `json:"customer_name"`
	CustomerPhone string                  `json:"customer_phone"`
	Status        types.ReservationStatus `gorm:"default:'Pending'" json:"status"`
	Code          string                  `gorm:"uniqueIndex" json:"code,omitempty"`
	ExpiresAt     time.Time               `json:"expires_at"`

	Medicine Medicine `json:"medicine,omitempty"`
	Pharmacy Pharmacy `json:"pharmacy,omitempty"`

	types.Timestamps
}
