package main

import (
	"fmt"
	"log"
	"os"

	"glowbook-backend/config"
	"glowbook-backend/models"
	"glowbook-backend/repository"
	"glowbook-backend/routes"
	"glowbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Lead{},
		&models.Appointment{},
		&models.Sale{},
		&models.Invoice{},
		&models.Contract{},
	)
}

func main() {
	repo := repository.NewGormLeadStore(config.DB)
	notify := services.NewNotifyService()

	digest := services.NewDigestService(repo, notify)
	digest.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(repo, notify)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
