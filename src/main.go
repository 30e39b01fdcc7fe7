package main

import (
	"log"
	"medifinder/src/config"
	"medifinder/src/controllers"
	"medifinder/src/db"
	"medifinder/src/lib"
	"medifinder/src/middlewares"
	"medifinder/src/types"
	"medifinder/src/utils"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api"
)

var phoneValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	phone, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	matched, _ := regexp.MatchString(`^\+?[0-9][0-9 \-]{5,14}$`, phone)
	return matched
}

var stockStatusValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	switch types.StockStatus(fl.Field().String()) {
	case types.STOCK_AVAILABLE, types.STOCK_LIMITED, types.STOCK_OUT, types.STOCK_UNAVAILABLE:
		return true
	}
	return false
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phonenumber", phoneValidatorFunc)
		v.RegisterValidation("stockstatus", stockStatusValidatorFunc)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "MediFinder API is running...")
	})
	return router
}

func apiGroup(g *gin.Engine) *gin.RouterGroup {
	api := g.Group(apiPrefix)
	return api
}

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	auth := apiGroup(g).Group("/auth")
	auth.
		POST("/register", func(ctx *gin.Context) {
			pharmacy, token, status, err := controllers.AuthRegister(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"pharmacy": pharmacy, "token": token})
		}).
		POST("/login-by-phone", func(ctx *gin.Context) {
			pharmacy, token, status, err := controllers.AuthLoginByPhone(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"pharmacy": pharmacy, "token": token})
		}).
		POST("/login", func(ctx *gin.Context) {
			pharmacy, token, status, err := controllers.AuthLogin(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"pharmacy": pharmacy, "token": token})
		})
	return auth
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	api := apiGroup(g)
	medicineHandlers(api)
	reservationHandlers(api)
	aiHandlers(api)
	geocodeHandlers(api)
	searchHandlers(api)
	return api
}

func ownerRoutes(g *gin.Engine) *gin.RouterGroup {
	authorized := g.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	medicineOwnerHandlers(authorized)
	reservationOwnerHandlers(authorized)
	return authorized
}

func startScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Printf("Error starting scheduler: %s\n", err.Error())
		return
	}
	if _, err := lib.CreateCronJob(utils.ExpireStaleReservations, 10*time.Minute); err != nil {
		log.Printf("Error scheduling reservation expiry job: %s\n", err.Error())
	}
	sched.Start()
}

func main() {
	apiEnv := config.APIEnv()
	if apiEnv != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	d := db.GetDb()
	if err := db.Migrate(d); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	router := setupRouter()
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowAllOrigins = true
		router.Use(cors.New(cc))
	}

	registerValidators()
	startScheduler()

	guestAuthRoutes(router)
	publicRoutes(router)
	ownerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("Server is running on port %s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("error starting server: %s", err.Error())
	}
}
