package main

import (
	"log"
	"medifinder/src/types"
	"medifinder/src/utils"
	"medifinder/src/workflow"
	"net/http"

	"github.com/gin-gonic/gin"
)

// searchHandlers exposes the client search workflow as a single server-side
// run: validate (or recommend), locate, search, filter, sort. The response
// reports the terminal workflow state so the client can render Confirming
// choices or error text without re-deriving the branch.
func searchHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/search", func(ctx *gin.Context) {
			var body types.SearchRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			s := workflow.Begin(body.Query)
			if s.State == workflow.StateIdle {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
				return
			}

			if body.Kind == "disease" {
				recommendations, err := utils.GetMedicineRecommendations(ctx.Request.Context(), body.Query)
				if err != nil {
					log.Printf("Error getting recommendations: %s\n", err.Error())
					s.State = workflow.StateError
					s.StatusText = "An error occurred. Please try your search again."
					ctx.JSON(http.StatusOK, searchResponse(s))
					return
				}
				s = workflow.ApplyRecommendations(s, body.Query, utils.SplitRecommendations(recommendations))
			} else {
				found, err := utils.CheckMedicineLocally(body.Query)
				if err != nil {
					log.Printf("Error on local inventory check: %s\n", err.Error())
				}
				s = workflow.ResolveLocal(s, found)
				if s.State == workflow.StateValidating {
					if body.Force {
						s = workflow.ApplyValidation(s, &types.MedicineValidation{Valid: true, CorrectedName: body.Query}, nil)
					} else {
						validation, err := utils.ValidateMedicineName(ctx.Request.Context(), body.Query)
						s = workflow.ApplyValidation(s, validation, err)
					}
				}
			}

			if s.State == workflow.StateLocating {
				var loc *types.GeoPoint
				if body.Lat != nil && body.Lon != nil {
					loc = &types.GeoPoint{Lat: *body.Lat, Lon: *body.Lon}
				}
				s = workflow.ApplyLocation(s, loc, loc == nil)
			}

			if s.State == workflow.StateSearching {
				medicines, err := utils.SearchMedicines(s.Medicine)
				results := utils.BuildPharmacyResults(medicines)
				sortKey := body.Sort
				if sortKey == "" {
					sortKey = types.SORT_DISTANCE
				}
				utils.SortPharmacyResults(results, sortKey)
				s = workflow.ApplyResults(s, results, err)
			}

			res := searchResponse(s)
			if s.Location != nil {
				res["address"] = utils.ReverseGeocode(ctx.Request.Context(), s.Location.Lat, s.Location.Lon)
			}
			if s.State == workflow.StateResults {
				if description, err := utils.GetMedicineDescription(ctx.Request.Context(), s.Medicine); err == nil {
					res["description"] = description
				}
			}
			ctx.JSON(http.StatusOK, res)
		})
	return g
}

func searchResponse(s workflow.Search) gin.H {
	res := gin.H{
		"state":    s.State,
		"original": s.Original,
		"status":   s.StatusText,
	}
	if s.Medicine != "" {
		res["medicine"] = s.Medicine
	}
	if s.Suggestion != "" {
		res["suggestion"] = s.Suggestion
	}
	if len(s.Choices) > 0 {
		res["choices"] = s.Choices
	}
	if s.State == workflow.StateResults {
		res["data"] = s.Results
		res["count"] = len(s.Results)
	}
	return res
}
