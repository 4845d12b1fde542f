package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"restaurant-manager/internal/config"
	"restaurant-manager/internal/database"
	"restaurant-manager/internal/handlers"
	"restaurant-manager/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureRestaurantIndexes(db); err != nil {
		log.Printf("restaurant index warning: %v", err)
	}
	if err := database.EnsureMenuItemIndexes(db); err != nil {
		log.Printf("menu item index warning: %v", err)
	}

	uploads := handlers.NewUploadStore(config.AppEnv.PublicDir)
	auth := middleware.UserAuth(config.AppEnv.JWTSecret)

	r := gin.Default()
	r.Static("/public", config.AppEnv.PublicDir)

	r.GET("/health", handlers.Health(db))

	api := r.Group("/api")

	api.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	api.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	api.GET("/auth/me", auth, handlers.GetMe(db))

	restaurants := api.Group("/restaurants")
	{
		restaurants.POST("", auth, handlers.CreateRestaurant(db))
		restaurants.GET("", auth, handlers.GetRestaurants(db))
		restaurants.GET("/:id", auth, handlers.GetRestaurant(db))
		restaurants.PUT("/:id", auth, handlers.UpdateRestaurant(db))
		restaurants.DELETE("/:id", auth, handlers.DeleteRestaurant(db))

		// the menu is publicly readable; mutations go through the owner check
		restaurants.GET("/:id/menu", handlers.GetMenuItems(db))
		restaurants.GET("/:id/menu/:itemId", handlers.GetMenuItem(db))
		restaurants.POST("/:id/menu", auth, handlers.CreateMenuItem(db, uploads))
		restaurants.PUT("/:id/menu/:itemId", auth, handlers.UpdateMenuItem(db, uploads))
		restaurants.DELETE("/:id/menu/:itemId", auth, handlers.DeleteMenuItem(db, uploads))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
