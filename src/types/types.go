package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type StockStatus string

const (
	STOCK_AVAILABLE StockStatus = "Available"
	STOCK_LIMITED   StockStatus = "LimitedStock"
	STOCK_OUT       StockStatus = "OutOfStock"
	// STOCK_UNAVAILABLE is a legacy value still present in old records.
	STOCK_UNAVAILABLE StockStatus = "Unavailable"
)

type ReservationStatus string

const (
	RESERVATION_PENDING   ReservationStatus = "Pending"
	RESERVATION_CONFIRMED ReservationStatus = "Confirmed"
	RESERVATION_PICKED_UP ReservationStatus = "PickedUp"
	RESERVATION_CANCELLED ReservationStatus = "Cancelled"
)

type SortKey string

const (
	SORT_PRICE        SortKey = "price"
	SORT_DISTANCE     SortKey = "distance"
	SORT_AVAILABILITY SortKey = "availability"
)

type GeoPoint struct {
	Lat float64 `json:"lat" binding:"required"`
	Lon float64 `json:"lon" binding:"required"`
}

type Claims struct {
	PharmacyID uint   `json:"pharmacy_id"`
	Contact    string `json:"contact"`
	jwt.RegisteredClaims
}

type RegisterPharmacyRequestBody struct {
	Name           string    `json:"name" binding:"required"`
	Address        string    `json:"address" binding:"required"`
	Contact        string    `json:"contact" binding:"required,phonenumber"`
	Location       *GeoPoint `json:"location,omitempty"`
	OperatingHours string    `json:"operatingHours" binding:"required"`
	IsOpen24x7     bool      `json:"isOpen24x7,omitempty"`
}

type LoginByPhoneRequestBody struct {
	Contact string `json:"contact" binding:"required,phonenumber"`
}

type LegacyLoginRequestBody struct {
	OwnerID string `json:"ownerId" binding:"required"`
}

type CreateMedicineRequestBody struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Price       float64     `json:"price" binding:"required,gt=0"`
	Stock       StockStatus `json:"stock,omitempty" binding:"omitempty,stockstatus"`
	Quantity    int         `json:"quantity,omitempty" binding:"omitempty,gte=0"`
	ExpiryDate  *time.Time  `json:"expiryDate,omitempty"`
}

type UpdateMedicineRequestBody struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Price       *float64     `json:"price,omitempty" binding:"omitempty,gt=0"`
	Stock       *StockStatus `json:"stock,omitempty" binding:"omitempty,stockstatus"`
	Quantity    *int         `json:"quantity,omitempty" binding:"omitempty,gte=0"`
	ExpiryDate  *time.Time   `json:"expiryDate,omitempty"`
}

type CreateReservationRequestBody struct {
	MedicineID    uint   `json:"medicineId" binding:"required"`
	PharmacyID    uint   `json:"pharmacyId" binding:"required"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required,phonenumber"`
}

type UpdateReservationStatusRequestBody struct {
	Status ReservationStatus `json:"status" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type PharmacyIDRequestParams struct {
	PharmacyID uint `uri:"pharmacyId" binding:"required"`
}

type RecommendRequestBody struct {
	Disease string `json:"disease" binding:"required"`
}

type ImageRequestBody struct {
	Image string `json:"image" binding:"required"`
}

type MedicineNameRequestBody struct {
	Name string `json:"name" binding:"required"`
}

type ReverseGeocodeRequestBody struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type SearchRequestBody struct {
	Query string  `json:"query" binding:"required"`
	Kind  string  `json:"kind,omitempty" binding:"omitempty,oneof=medicine disease"`
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
	Sort  SortKey `json:"sort,omitempty" binding:"omitempty,oneof=price distance availability"`
	// Force skips AI validation, used when the user insists on the
	// original spelling after a failed or corrected validation.
	Force bool `json:"force,omitempty"`
}

// MedicineValidation is the contract of the name-validation AI operation.
type MedicineValidation struct {
	Valid         bool   `json:"valid"`
	CorrectedName string `json:"correctedName"`
	Reason        string `json:"reason"`
}

// PriceSlipItem is one row extracted from a photographed price list.
type PriceSlipItem struct {
	MedicineName string  `json:"medicineName"`
	Price        float64 `json:"price"`
}

// PharmacyResult is one search hit: a pharmacy joined with the matched
// medicine, carrying the client-facing sort inputs.
type PharmacyResult struct {
	PharmacyID     uint        `json:"pharmacy_id"`
	MedicineID     uint        `json:"medicine_id"`
	Name           string      `json:"name"`
	Address        string      `json:"address"`
	Phone          string      `json:"phone"`
	Lat            float64     `json:"lat"`
	Lon            float64     `json:"lon"`
	OperatingHours string      `json:"operating_hours,omitempty"`
	IsOpen24x7     bool        `json:"is_open_24x7"`
	Rating         float64     `json:"rating"`
	Medicine       string      `json:"medicine"`
	Price          float64     `json:"price"`
	Stock          StockStatus `json:"stock"`
	Distance       float64     `json:"distance"`
	IsBestOption   bool        `json:"is_best_option"`
}
