package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"carelink-be/config"
	"carelink-be/models"
	"carelink-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}

	log.Println("MongoDB connection established successfully!")

	if err := models.EnsureUserIndexes(config.GetCollection("users")); err != nil {
		log.Printf("Failed to ensure user indexes: %v", err)
	}
	if err := models.EnsureNGOIndexes(config.GetCollection("ngos")); err != nil {
		log.Printf("Failed to ensure NGO indexes: %v", err)
	}

	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedis()
	} else {
		log.Println("REDIS_ADDRESS not set, report rate limiting disabled")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.NGORoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:5173", "http://localhost:5174"}
	}
	return strings.Split(raw, ",")
}
