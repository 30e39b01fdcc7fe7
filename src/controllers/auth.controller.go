package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"medifinder/src/db"
	"medifinder/src/lib"
	"medifinder/src/models"
	"medifinder/src/types"
	"medifinder/src/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthRegister creates a Pharmacy and hands back a signed owner token.
func AuthRegister(ctx *gin.Context) (*models.Pharmacy, *string, int, error) {
	var body types.RegisterPharmacyRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	location := body.Location
	if location == nil {
		lat, lon, err := utils.GeocodeAddress(ctx.Request.Context(), body.Address)
		if err != nil {
			log.Printf("Error geocoding address for registration: %s\n", err.Error())
			return nil, nil, http.StatusBadRequest, errors.New("could not resolve pharmacy location")
		}
		location = &types.GeoPoint{Lat: lat, Lon: lon}
	}

	pharmacy := models.Pharmacy{
		Name:           body.Name,
		Address:        body.Address,
		Lat:            location.Lat,
		Lon:            location.Lon,
		Contact:        body.Contact,
		OperatingHours: body.OperatingHours,
		IsOpen24x7:     body.IsOpen24x7,
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Pharmacy{}).
			Where(&models.Pharmacy{Contact: body.Contact}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("a pharmacy is already registered with this contact number. Please proceed to Log In")
		}
		if err := tx.Create(&pharmacy).Error; err != nil {
			log.Printf("Error creating pharmacy: %s\n", err.Error())
			return fmt.Errorf("error registering pharmacy: %s", body.Name)
		}
		return nil
	})
	if err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	token, err := utils.GenerateJWT(pharmacy.ID, pharmacy.Contact)
	if err != nil {
		log.Printf("Error generating token for pharmacy [%d]: %s\n", pharmacy.ID, err.Error())
		return nil, nil, http.StatusInternalServerError, err
	}
	cachePharmacy(&pharmacy)
	return &pharmacy, &token, http.StatusCreated, nil
}

// AuthLoginByPhone is the effective login path: a contact-number lookup with
// no password. A miss reports not-found so the client can offer registration.
func AuthLoginByPhone(ctx *gin.Context) (*models.Pharmacy, *string, int, error) {
	var body types.LoginByPhoneRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var pharmacy models.Pharmacy
	if err := db.
		Model(&models.Pharmacy{}).
		Where(&models.Pharmacy{Contact: body.Contact}).
		First(&pharmacy).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, nil, http.StatusNotFound, errors.New("pharmacy not found")
	}

	token, err := utils.GenerateJWT(pharmacy.ID, pharmacy.Contact)
	if err != nil {
		return nil, nil, http.StatusInternalServerError, err
	}
	cachePharmacy(&pharmacy)
	return &pharmacy, &token, http.StatusOK, nil
}

// AuthLogin is the superseded owner-ID scheme, kept for older clients.
func AuthLogin(ctx *gin.Context) (*models.Pharmacy, *string, int, error) {
	var body types.LegacyLoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var pharmacy models.Pharmacy
	if err := db.
		Model(&models.Pharmacy{}).
		Where(&models.Pharmacy{Contact: body.OwnerID}).
		First(&pharmacy).
		Error; err != nil {
		return nil, nil, http.StatusBadRequest, errors.New("invalid credentials")
	}

	token, err := utils.GenerateJWT(pharmacy.ID, pharmacy.Contact)
	if err != nil {
		return nil, nil, http.StatusInternalServerError, err
	}
	return &pharmacy, &token, http.StatusOK, nil
}

func cachePharmacy(pharmacy *models.Pharmacy) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	raw, err := json.Marshal(pharmacy)
	if err != nil {
		return
	}
	key := fmt.Sprintf("%d:pharmacy", pharmacy.ID)
	if err := rd.Set(context.Background(), key, string(raw), 24*time.Hour).Err(); err != nil {
		log.Printf("[redis] Error updating pharmacy cache: %s\n", err.Error())
	}
}
