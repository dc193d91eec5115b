package main

import (
	"fmt"

	"treesure/internal/global"
	"treesure/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// initLogger configures the logging system before anything else runs so
// every later init step can log through it.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// main_thread builds the Fiber app and serves it on the main goroutine.
func main_thread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server")

	if err := app.Listen(cfg.Address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

func main() {
	initLogger()
	InitGlobal()
	main_thread()
}
