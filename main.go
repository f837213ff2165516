package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Agent-cat/Midland/config"
	"github.com/Agent-cat/Midland/routes"
	"github.com/Agent-cat/Midland/utils"
)

func main() {
	utils.InitLogger()
	defer utils.SyncLogger()

	if err := godotenv.Load(); err != nil {
		utils.Info("no .env file found, using system environment variables")
	}

	config.ConnectDB()

	utils.InitRedis()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	routes.RegisterRoutes(e)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.Info("server starting", zap.String("port", port))
	e.Logger.Fatal(e.Start(":" + port))
}
