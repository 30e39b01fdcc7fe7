package main

import (
	"errors"
	"fmt"
	"log"
	"medifinder/src/db"
	"medifinder/src/models"
	"medifinder/src/types"
	"medifinder/src/utils"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reservation, err := utils.CreateReservation(&body)
			if err != nil {
				if errors.Is(err, utils.ErrMedicineUnavailable) || errors.Is(err, utils.ErrPharmacyMismatch) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				log.Printf("CreateReservation failed: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error creating reservation"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": reservation})
		})
	return g
}

func reservationOwnerHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/reservations/pharmacy", func(ctx *gin.Context) {
			pharmacyId := ctx.GetUint("pharmacy_id")
			reservations, err := utils.GetPharmacyReservations(pharmacyId)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservations, "count": len(reservations)})
		}).
		PATCH("/reservations/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateReservationStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pharmacyId := ctx.GetUint("pharmacy_id")
			reservation, err := utils.UpdateReservationStatus(params.ID, pharmacyId, body.Status)
			if err != nil {
				if errors.Is(err, utils.ErrInvalidTransition) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
					return
				}
				log.Printf("Error updating reservation status: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "error updating reservation status"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		GET("/reservations/:id/qr", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			pharmacyId := ctx.GetUint("pharmacy_id")
			var reservation models.Reservation
			db := db.GetDb()
			if err := db.
				Where(&models.Reservation{ID: params.ID, PharmacyID: pharmacyId}).
				First(&reservation).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
				return
			}
			qrc, err := qrcode.New(reservation.Code)
			if err != nil {
				log.Printf("Error generating QR for reservation [%d]: %s\n", reservation.ID, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			filepath := path.Join(os.TempDir(), fmt.Sprintf("reservation_%d.jpeg", reservation.ID))
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.File(filepath)
		})
	return g
}
