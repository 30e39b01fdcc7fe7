package utils

import (
	"errors"
	"log"
	"math/rand"
	"medifinder/src/config"
	"medifinder/src/db"
	"medifinder/src/models"
	"medifinder/src/types"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

var (
	ErrMedicineUnavailable = errors.New("medicine not available in requested pharmacy")
	ErrPharmacyMismatch    = errors.New("medicine does not belong to the requested pharmacy")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")
)

func GenerateJWT(pharmacyID uint, contact string) (string, error) {
	now := time.Now()
	claims := types.Claims{
		PharmacyID: pharmacyID,
		Contact:    contact,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(pharmacyID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.TOKEN_TTL_HOURS * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(jwtKey)
}

// CreateReservation places a 2-hour hold on one unit. The decrement is a
// single conditional UPDATE so two holds can never share the last unit.
func CreateReservation(params *types.CreateReservationRequestBody) (*models.Reservation, error) {
	db := db.GetDb()
	now := time.Now()
	reservation := models.Reservation{
		MedicineID:    params.MedicineID,
		PharmacyID:    params.PharmacyID,
		CustomerName:  params.CustomerName,
		CustomerPhone: params.CustomerPhone,
		Status:        types.RESERVATION_PENDING,
		Code:          uuid.NewString(),
		ExpiresAt:     now.Add(config.RESERVATION_TTL_HOURS * time.Hour),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var medicine models.Medicine
		if err := tx.Where(&models.Medicine{ID: params.MedicineID}).First(&medicine).Error; err != nil {
			return ErrMedicineUnavailable
		}
		if medicine.PharmacyID != params.PharmacyID {
			return ErrPharmacyMismatch
		}
		res := tx.
			Model(&models.Medicine{}).
			Where("id = ? AND quantity > 0", params.MedicineID).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMedicineUnavailable
		}
		if err := tx.Where(&models.Medicine{ID: params.MedicineID}).First(&medicine).Error; err != nil {
			return err
		}
		if medicine.Quantity == 0 {
			if err := tx.
				Model(&models.Medicine{}).
				Where(&models.Medicine{ID: params.MedicineID}).
				Update("stock", types.STOCK_OUT).
				Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&reservation).Error; err != nil {
			log.Printf("error in Reservation transaction: %s\n", err.Error())
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func GetPharmacyReservations(pharmacyID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	db := db.GetDb()
	err := db.
		Model(&models.Reservation{}).
		Where(&models.Reservation{PharmacyID: pharmacyID}).
		Preload("Medicine").
		Order("created_at DESC").
		Find(&reservations).
		Error
	return reservations, err
}

var reservationTransitions = map[types.ReservationStatus][]types.ReservationStatus{
	types.RESERVATION_PENDING:   {types.RESERVATION_CONFIRMED, types.RESERVATION_CANCELLED},
	types.RESERVATION_CONFIRMED: {types.RESERVATION_PICKED_UP, types.RESERVATION_CANCELLED},
}

// CanTransitionReservation reports whether from→to is allowed. PickedUp and
// Cancelled are terminal.
func CanTransitionReservation(from, to types.ReservationStatus) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateReservationStatus applies a validated transition on behalf of the
// owning pharmacy. Foreign reservations answer record-not-found.
func UpdateReservationStatus(id, pharmacyID uint, status types.ReservationStatus) (*models.Reservation, error) {
	db := db.GetDb()
	var reservation models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Reservation{ID: id, PharmacyID: pharmacyID}).
			First(&reservation).
			Error; err != nil {
			return err
		}
		if !CanTransitionReservation(reservation.Status, status) {
			return ErrInvalidTransition
		}
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{ID: id}).
			Update("status", status).
			Error; err != nil {
			return err
		}
		reservation.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ExpireStaleReservations cancels Pending holds past their expiry time.
// Runs periodically from the scheduler.
func ExpireStaleReservations() {
	db := db.GetDb()
	res := db.
		Model(&models.Reservation{}).
		Where("status = ? AND expires_at < ?", types.RESERVATION_PENDING, time.Now()).
		Update("status", types.RESERVATION_CANCELLED)
	if res.Error != nil {
		log.Printf("Error expiring reservations: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Cancelled %d expired reservations\n", res.RowsAffected)
	}
}

// SearchMedicines is a case-insensitive substring match with the owning
// pharmacy embedded.
func SearchMedicines(q string) ([]models.Medicine, error) {
	var medicines []models.Medicine
	db := db.GetDb()
	err := db.
		Model(&models.Medicine{}).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%").
		Preload("Pharmacy").
		Find(&medicines).
		Error
	return medicines, err
}

// CheckMedicineLocally reports whether any pharmacy stocks the exact name.
// The search workflow uses it to skip AI validation on known inventory.
func CheckMedicineLocally(name string) (bool, error) {
	var count int64
	db := db.GetDb()
	err := db.
		Model(&models.Medicine{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).
		Error
	return count > 0, err
}

// MockDistance stands in for a real distance computation, which does not
// exist yet. TODO: replace with haversine once pharmacy coordinates are
// verified on registration.
func MockDistance() float64 {
	return rand.Float64() * 5
}

// BuildPharmacyResults filters matches down to Available stock and attaches
// the per-result distance.
func BuildPharmacyResults(medicines []models.Medicine) []types.PharmacyResult {
	results := make([]types.PharmacyResult, 0, len(medicines))
	for _, m := range medicines {
		if m.Stock != types.STOCK_AVAILABLE {
			continue
		}
		results = append(results, types.PharmacyResult{
			PharmacyID:     m.PharmacyID,
			MedicineID:     m.ID,
			Name:           m.Pharmacy.Name,
			Address:        m.Pharmacy.Address,
			Phone:          m.Pharmacy.Contact,
			Lat:            m.Pharmacy.Lat,
			Lon:            m.Pharmacy.Lon,
			OperatingHours: m.Pharmacy.OperatingHours,
			IsOpen24x7:     m.Pharmacy.IsOpen24x7,
			Rating:         m.Pharmacy.Rating,
			Medicine:       m.Name,
			Price:          m.Price,
			Stock:          m.Stock,
			Distance:       MockDistance(),
		})
	}
	return results
}

// SortPharmacyResults orders results by the active sort key. A best-option
// result always sorts first regardless of key; the availability key
// degenerates to distance since results are pre-filtered to Available.
func SortPharmacyResults(results []types.PharmacyResult, key types.SortKey) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.IsBestOption != b.IsBestOption {
			return a.IsBestOption
		}
		switch key {
		case types.SORT_PRICE:
			return a.Price < b.Price
		default:
			return a.Distance < b.Distance
		}
	})
}
