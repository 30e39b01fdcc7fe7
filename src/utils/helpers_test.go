package utils

import (
	"medifinder/src/models"
	"medifinder/src/types"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestGenerateJWT(t *testing.T) {
	token, err := GenerateJWT(42, "+91 98765 43210")
	assert.Nil(t, err)
	assert.NotEmpty(t, token)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	assert.Nil(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, uint(42), claims.PharmacyID)
	assert.Equal(t, "42", claims.Subject)
}

func TestCanTransitionReservation(t *testing.T) {
	allowed := [][2]types.ReservationStatus{
		{types.RESERVATION_PENDING, types.RESERVATION_CONFIRMED},
		{types.RESERVATION_PENDING, types.RESERVATION_CANCELLED},
		{types.RESERVATION_CONFIRMED, types.RESERVATION_PICKED_UP},
		{types.RESERVATION_CONFIRMED, types.RESERVATION_CANCELLED},
	}
	for _, pair := range allowed {
		assert.Truef(t, CanTransitionReservation(pair[0], pair[1]), "%s -> %s should be allowed", pair[0], pair[1])
	}

	denied := [][2]types.ReservationStatus{
		{types.RESERVATION_PENDING, types.RESERVATION_PICKED_UP},
		{types.RESERVATION_PICKED_UP, types.RESERVATION_CANCELLED},
		{types.RESERVATION_CANCELLED, types.RESERVATION_PENDING},
		{types.RESERVATION_PICKED_UP, types.RESERVATION_CONFIRMED},
	}
	for _, pair := range denied {
		assert.Falsef(t, CanTransitionReservation(pair[0], pair[1]), "%s -> %s should be denied", pair[0], pair[1])
	}
}

func TestBuildPharmacyResults(t *testing.T) {
	medicines := []models.Medicine{
		{ID: 1, Name: "Paracetamol", Price: 25.50, Stock: types.STOCK_AVAILABLE, PharmacyID: 1, Pharmacy: models.Pharmacy{ID: 1, Name: "HealthPlus"}},
		{ID: 2, Name: "Paracetamol", Price: 22.00, Stock: types.STOCK_OUT, PharmacyID: 2, Pharmacy: models.Pharmacy{ID: 2, Name: "City Meds"}},
		{ID: 3, Name: "Paracetamol", Price: 30.00, Stock: types.STOCK_LIMITED, PharmacyID: 3, Pharmacy: models.Pharmacy{ID: 3, Name: "New Life"}},
	}
	results := BuildPharmacyResults(medicines)
	assert.Len(t, results, 1)
	assert.Equal(t, "HealthPlus", results[0].Name)
	assert.Equal(t, types.STOCK_AVAILABLE, results[0].Stock)
}

func TestSortPharmacyResults(t *testing.T) {
	t.Run("by price", func(t *testing.T) {
		results := []types.PharmacyResult{
			{Name: "C", Price: 30, Distance: 1},
			{Name: "A", Price: 10, Distance: 3},
			{Name: "B", Price: 20, Distance: 2},
		}
		SortPharmacyResults(results, types.SORT_PRICE)
		assert.Equal(t, "A", results[0].Name)
		assert.Equal(t, "B", results[1].Name)
		assert.Equal(t, "C", results[2].Name)
	})

	t.Run("by distance", func(t *testing.T) {
		results := []types.PharmacyResult{
			{Name: "C", Price: 30, Distance: 1},
			{Name: "A", Price: 10, Distance: 3},
		}
		SortPharmacyResults(results, types.SORT_DISTANCE)
		assert.Equal(t, "C", results[0].Name)
	})

	t.Run("best option leads regardless of key", func(t *testing.T) {
		results := []types.PharmacyResult{
			{Name: "A", Price: 10},
			{Name: "B", Price: 50, IsBestOption: true},
		}
		SortPharmacyResults(results, types.SORT_PRICE)
		assert.Equal(t, "B", results[0].Name)
	})

	t.Run("availability behaves as distance", func(t *testing.T) {
		results := []types.PharmacyResult{
			{Name: "far", Distance: 4},
			{Name: "near", Distance: 1},
		}
		SortPharmacyResults(results, types.SORT_AVAILABILITY)
		assert.Equal(t, "near", results[0].Name)
	})
}
