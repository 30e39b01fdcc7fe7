package main

import (
	"log"
	"medifinder/src/db"
	"medifinder/src/models"
	"medifinder/src/types"
	"medifinder/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func medicineHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/medicines/search", func(ctx *gin.Context) {
			q := ctx.Query("q")
			if q == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
				return
			}
			medicines, err := utils.SearchMedicines(q)
			if err != nil {
				log.Printf("Error searching medicines: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error searching medicines"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": medicines, "count": len(medicines)})
		}).
		GET("/medicines/pharmacy/:pharmacyId", func(ctx *gin.Context) {
			var params types.PharmacyIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var medicines []models.Medicine
			db := db.GetDb()
			if err := db.
				Model(&models.Medicine{}).
				Where(&models.Medicine{PharmacyID: params.PharmacyID}).
				Order("name ASC").
				Find(&medicines).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching medicines"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": medicines, "count": len(medicines)})
		}).
		GET("/medicines/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var medicine models.Medicine
			db := db.GetDb()
			if err := db.
				Model(&models.Medicine{}).
				Where(&models.Medicine{ID: params.ID}).
				Preload("Pharmacy").
				First(&medicine).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": medicine})
		})
	return g
}

func medicineOwnerHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/medicines", func(ctx *gin.Context) {
			var body types.CreateMedicineRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pharmacyId := ctx.GetUint("pharmacy_id")
			stock := body.Stock
			if stock == "" {
				stock = types.STOCK_AVAILABLE
			}
			medicine := models.Medicine{
				Name:        body.Name,
				Description: body.Description,
				Category:    body.Category,
				PharmacyID:  pharmacyId,
				Price:       body.Price,
				Stock:       stock,
				Quantity:    body.Quantity,
				ExpiryDate:  body.ExpiryDate,
			}
			db := db.GetDb()
			if err := db.Create(&medicine).Error; err != nil {
				log.Printf("Error creating medicine: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "error creating medicine"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": medicine})
		}).
		PATCH("/medicines/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateMedicineRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pharmacyId := ctx.GetUint("pharmacy_id")
			db := db.GetDb()
			var medicine models.Medicine
			// Not-found and not-owned are deliberately the same answer.
			if err := db.
				Where(&models.Medicine{ID: params.ID, PharmacyID: pharmacyId}).
				First(&medicine).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
			}
			if body.Description != nil {
				updates["description"] = *body.Description
			}
			if body.Category != nil {
				updates["category"] = *body.Category
			}
			if body.Price != nil {
				updates["price"] = *body.Price
			}
			if body.Stock != nil {
				updates["stock"] = *body.Stock
			}
			if body.Quantity != nil {
				updates["quantity"] = *body.Quantity
			}
			if body.ExpiryDate != nil {
				updates["expiry_date"] = *body.ExpiryDate
			}
			if len(updates) > 0 {
				if err := db.
					Model(&models.Medicine{}).
					Where(&models.Medicine{ID: params.ID}).
					Updates(updates).
					Error; err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "error updating medicine"})
					return
				}
			}
			if err := db.Where(&models.Medicine{ID: params.ID}).First(&medicine).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": medicine})
		}).
		DELETE("/medicines/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pharmacyId := ctx.GetUint("pharmacy_id")
			db := db.GetDb()
			res := db.
				Where(&models.Medicine{ID: params.ID, PharmacyID: pharmacyId}).
				Delete(&models.Medicine{})
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "error deleting medicine"})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
