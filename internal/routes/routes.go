package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"github.com/example/workwear/internal/config"
	"github.com/example/workwear/internal/handlers"
	"github.com/example/workwear/internal/middleware"
	"github.com/example/workwear/internal/repository"
	"github.com/example/workwear/internal/services"
)

const contactRatePeriod = time.Minute

// Register wires up all HTTP routes. rates may be nil, which disables rate limiting.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, rates middleware.RateStore) {
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	companyRepo := repository.NewCompanyRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPassword, adminRepo)
	telegramService := services.NewTelegramService(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID)

	authHandler := handlers.NewAuthHandler(cfg, authService)
	catalogHandler := handlers.NewCatalogHandler(categoryRepo)
	productHandler := handlers.NewProductHandler(cfg, productRepo)
	companyHandler := handlers.NewCompanyHandler(companyRepo)
	searchHandler := handlers.NewSearchHandler(productRepo)
	contactHandler := handlers.NewContactHandler(telegramService)
	adminHandler := handlers.NewAdminHandler(productRepo)

	requireAdmin := middleware.RequireAdmin(cfg)

	api := app.Group("/api")

	// Admin session
	admin := api.Group("/admin")
	admin.Post("/login", authHandler.Login)
	admin.Post("/logout", authHandler.Logout)
	admin.Get("/check-auth", authHandler.CheckAuth)
	admin.Get("/stats", requireAdmin, adminHandler.DashboardStats)

	// Admin products
	adminProducts := admin.Group("/products")
	adminProducts.Get("/", productHandler.ListProducts)
	adminProducts.Post("/", requireAdmin, productHandler.CreateProduct)
	adminProducts.Get("/:id", requireAdmin, productHandler.GetProduct)
	adminProducts.Put("/:id", requireAdmin, productHandler.UpdateProduct)
	adminProducts.Delete("/:id", requireAdmin, productHandler.DeleteProduct)

	// Admin categories
	adminCategories := admin.Group("/categories")
	adminCategories.Get("/", catalogHandler.ListCategories)
	adminCategories.Post("/", requireAdmin, catalogHandler.CreateCategory)
	adminCategories.Put("/:id", requireAdmin, catalogHandler.UpdateCategory)
	adminCategories.Delete("/:id", requireAdmin, catalogHandler.DeleteCategory)

	// Admin company info
	admin.Get("/company", requireAdmin, companyHandler.GetCompany)
	admin.Post("/company", requireAdmin, companyHandler.UpdateCompany)

	// Storefront
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:slug", productHandler.GetProductBySlug)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/categories/:slug", catalogHandler.GetCategory)
	api.Get("/search", searchHandler.Search)
	api.Get("/manufacturers", searchHandler.Manufacturers)
	api.Get("/company", companyHandler.GetCompany)

	// Contact form
	api.Use("/contact", cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	api.Post("/contact", middleware.RateLimiter(rates, "contact", cfg.ContactRateLimit, contactRatePeriod), contactHandler.Submit)
	api.Get("/contact", contactHandler.MethodNotAllowed)

	// Admin pages
	app.Use("/admin", middleware.AdminPageGuard(cfg))
	if cfg.AdminPanelDir != "" {
		app.Static("/admin", cfg.AdminPanelDir, fiber.Static{
			Index:  "index.html",
			Browse: false,
		})
	}
}
