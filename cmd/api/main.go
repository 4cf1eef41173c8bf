package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-medistore/internal/handler"
	"go-medistore/internal/middleware"
	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/internal/service"
	"go-medistore/pkg/database"
	"go-medistore/pkg/mailer"

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
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Medicine{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
	)

	// 3. Seed default admin
	seedAdmin(db)

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	medicineRepo := repository.NewMedicineRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	mail := mailer.NewFromEnv()

	authService := service.NewAuthService(userRepo, mail)
	categoryService := service.NewCategoryService(categoryRepo)
	medicineService := service.NewMedicineService(medicineRepo)
	orderService := service.NewOrderService(orderRepo, medicineRepo)
	reviewService := service.NewReviewService(reviewRepo, medicineRepo)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	medicineHandler := handler.NewMedicineHandler(medicineService)
	orderHandler := handler.NewOrderHandler(orderService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Medistore API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/login", authHandler.Login)

	// Categories: public reads, admin writes
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", middleware.Protect(userRepo, model.RoleAdmin), categoryHandler.Create)
	categories.Put("/:id", middleware.Protect(userRepo, model.RoleAdmin), categoryHandler.Update)
	categories.Delete("/:id", middleware.Protect(userRepo, model.RoleAdmin), categoryHandler.Delete)

	// Medicines: public reads, seller writes (ownership-checked in service)
	medicines := api.Group("/medicines")
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Post("/", middleware.Protect(userRepo, model.RoleSeller), medicineHandler.Create)
	medicines.Put("/:id", middleware.Protect(userRepo, model.RoleSeller), medicineHandler.Update)
	medicines.Delete("/:id", middleware.Protect(userRepo, model.RoleSeller), medicineHandler.Delete)

	// Orders: role-scoped
	orders := api.Group("/orders")
	orders.Get("/", middleware.Protect(userRepo, model.RoleAdmin, model.RoleCustomer, model.RoleSeller), orderHandler.List)
	orders.Get("/:id", middleware.Protect(userRepo, model.RoleAdmin, model.RoleCustomer, model.RoleSeller), orderHandler.GetByID)
	orders.Post("/", middleware.Protect(userRepo, model.RoleCustomer), orderHandler.Create)
	orders.Put("/:id", middleware.Protect(userRepo, model.RoleAdmin, model.RoleSeller), orderHandler.Update)
	orders.Delete("/:id", middleware.Protect(userRepo, model.RoleAdmin, model.RoleSeller), orderHandler.Delete)

	// Reviews: public reads, customer/admin writes
	reviews := api.Group("/reviews")
	reviews.Get("/:medicineId/stats", reviewHandler.Stats)
	reviews.Get("/:medicineId", reviewHandler.List)
	reviews.Post("/:medicineId", middleware.Protect(userRepo, model.RoleCustomer, model.RoleAdmin), reviewHandler.Create)
	reviews.Delete("/:reviewId", middleware.Protect(userRepo, model.RoleCustomer, model.RoleAdmin), reviewHandler.Delete)

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "4000"
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

// seedAdmin creates the default admin account if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@medistore.local"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Name:          "Administrator",
		Email:         email,
		Phone:         "",
		Role:          model.RoleAdmin,
		Status:        model.StatusActive,
		EmailVerified: true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s", email)
	}
}
