package main

import (
	"fmt"
	"os"

	"github.com/Kevbec/SalonManager/config"
	"github.com/Kevbec/SalonManager/controllers"
	"github.com/Kevbec/SalonManager/models"
	"github.com/Kevbec/SalonManager/routes"
	"github.com/Kevbec/SalonManager/services"
	"github.com/Kevbec/SalonManager/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	config.InitLogger()
	config.ConnectDB()
	config.ConnectRedis()

	config.DB.AutoMigrate(
		&models.User{},
		&store.Document{},
	)

	gateway := store.NewDocumentStore(config.DB)
	controllers.Setup(store.NewManager(gateway))

	services.NewScheduler(config.DB, gateway).Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)

	log.Info().Str("port", port).Msg("Server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
