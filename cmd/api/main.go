package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-coffee-warehouse/internal/handler"
	"go-coffee-warehouse/internal/middleware"
	"go-coffee-warehouse/internal/model"
	"go-coffee-warehouse/internal/repository"
	"go-coffee-warehouse/internal/service"
	"go-coffee-warehouse/internal/ws"
	"go-coffee-warehouse/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Transaction{}, &model.User{})

	// 3. Seed default admin account
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	invService := service.NewInventoryService(productRepo, txRepo, db, wsHub)
	dashService := service.NewDashboardService(txRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, wsHub)

	invHandler := handler.NewInventoryHandler(invService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Milano Coffee Warehouse v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/logout", middleware.RequireAuth(userRepo), authHandler.Logout)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog & Ledger
	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/transactions", invHandler.GetTransactions)
	protected.Get("/transactions/:id", invHandler.GetTransaction)
	// Role/type matching (importers import, exporters export) is enforced
	// in the service against the authenticated actor
	protected.Post("/transactions", invHandler.CreateTransaction)

	// Staff Management (admin only)
	admin := protected.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.Get("/users", userHandler.GetUsers)
	admin.Get("/users/:id", userHandler.GetUser)
	admin.Put("/users/:id/enabled", userHandler.SetUserEnabled)
	admin.Delete("/users/:id", userHandler.DeleteUser)

	// Dashboard (admin only)
	admin.Get("/dashboard/stats", dashHandler.GetOverviewStats)
	admin.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)
	admin.Get("/dashboard/trade-summary", dashHandler.GetTradeSummary)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if none exists. The admin slot
// has capacity 1, so a seeded admin means registration can only add
// importers and exporters.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Name:    "Warehouse Administrator",
		Email:   "admin@example.com",
		Role:    model.RoleAdmin,
		Enabled: true,
	}

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin@example.com / admin123")
	}
}
