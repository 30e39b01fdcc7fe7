package models

import (
	"medifinder/src/types"
)

type Pharmacy struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Contact        string  `gorm:"uniqueIndex" json:"contact"`
	OperatingHours string  `json:"operating_hours,omitempty"`
	IsOpen24x7     bool    `gorm:"default:false" json:"is_open_24x7"`
	Rating         float64 `gorm:"default:0" json:"rating"`

	types.Timestamps
}
