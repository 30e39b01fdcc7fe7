package main

import (
	"errors"
	"log"
	"medifinder/src/lib"
	"medifinder/src/types"
	"medifinder/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func aiHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	ai := g.Group("/ai")
	ai.
		POST("/recommend", func(ctx *gin.Context) {
			var body types.RecommendRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "disease is required"})
				return
			}
			recommendations, err := utils.GetMedicineRecommendations(ctx.Request.Context(), body.Disease)
			if err != nil {
				log.Printf("Error getting recommendations: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "AI recommendation failed"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
		}).
		POST("/analyze-prescription", func(ctx *gin.Context) {
			var body types.ImageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
				return
			}
			medicines, err := utils.AnalyzePrescription(ctx.Request.Context(), body.Image)
			if err != nil {
				if errors.Is(err, lib.ErrQuotaExceeded) {
					ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error analyzing prescription: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "prescription analysis failed"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"medicines": medicines})
		}).
		POST("/validate-medicine", func(ctx *gin.Context) {
			var body types.MedicineNameRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
				return
			}
			validation, err := utils.ValidateMedicineName(ctx.Request.Context(), body.Name)
			if err != nil {
				// Never block the search on a validator outage.
				validation = &types.MedicineValidation{
					Valid:         true,
					CorrectedName: body.Name,
					Reason:        "Could not validate medicine name, but proceeding with search.",
				}
			}
			ctx.JSON(http.StatusOK, validation)
		}).
		POST("/parse-price-slip", func(ctx *gin.Context) {
			var body types.ImageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
				return
			}
			items, err := utils.ParsePriceSlip(ctx.Request.Context(), body.Image)
			if err != nil {
				if errors.Is(err, lib.ErrQuotaExceeded) {
					ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse image with AI service. Please ensure the image is clear and try again."})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		}).
		POST("/medicine-info", func(ctx *gin.Context) {
			var body types.MedicineNameRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
				return
			}
			description, err := utils.GetMedicineDescription(ctx.Request.Context(), body.Name)
			if err != nil {
				description = "Could not load information for " + body.Name + "."
			}
			ctx.JSON(http.StatusOK, gin.H{"description": description})
		}).
		POST("/medicine-alternative", func(ctx *gin.Context) {
			var body types.MedicineNameRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
				return
			}
			alternative, err := utils.GetMedicineAlternative(ctx.Request.Context(), body.Name)
			if err != nil {
				alternative = ""
			}
			ctx.JSON(http.StatusOK, gin.H{"alternative": alternative})
		})
	return g
}

func geocodeHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/geocode/reverse", func(ctx *gin.Context) {
			var body types.ReverseGeocodeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			address := utils.ReverseGeocode(ctx.Request.Context(), body.Lat, body.Lon)
			ctx.JSON(http.StatusOK, gin.H{"address": address})
		})
	return g
}
