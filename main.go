package main

import (
	"easylearn/config"
	progressController "easylearn/controllers/progress"
	"easylearn/database"
	"easylearn/progress"
	authRoutes "easylearn/routers/authRoutes"
	courseRoutes "easylearn/routers/courseRoutes"
	paymentRoutes "easylearn/routers/paymentRoutes"
	progressRoutes "easylearn/routers/progressRoutes"
	userProfileRoutes "easylearn/routers/userRoutes"
	"easylearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded course media
	app.Static("/uploads", config.AppConfig.UploadDir)

	progressCtrl := progressController.New(progress.NewGormEngine(database.Database.Db))

	authRoutes.SetupAuthRoutes(app)
	userProfileRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	progressRoutes.SetupProgressRoutes(app, progressCtrl)
	paymentRoutes.SetupPaymentRoutes(app)

	utils.InitializePaymentScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
