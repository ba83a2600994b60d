package main

import (
	"log"
	"strings"

	"depo-backend/internal/audit"
	"depo-backend/internal/auth"
	"depo-backend/internal/catalog"
	"depo-backend/internal/config"
	"depo-backend/internal/database"
	"depo-backend/internal/expense"
	"depo-backend/internal/history"
	"depo-backend/internal/metrics"
	"depo-backend/internal/models"
	"depo-backend/internal/reserve"
	"depo-backend/internal/settings"
	"depo-backend/internal/warehouse"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Kullanıcı yönetimi
	adminRoutes.Post("/users", auth.CreateUserHandler())

	// Ürün kataloğu yönetimi
	adminRoutes.Post("/products", catalog.CreateProductHandler())
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler())
	adminRoutes.Post("/products/import", catalog.ImportProductsHandler())

	// Ürün listesi
	protected.Get("/products", catalog.ListProductsHandler())

	// Depo (stok görünümü + mal kabul)
	protected.Get("/warehouse", warehouse.ListStockHandler(cfg))
	protected.Get("/warehouse/:productId", warehouse.GetStockHandler(cfg))
	protected.Post("/warehouse/receive", warehouse.ReceiveStockHandler(cfg))

	// Projeler
	protected.Get("/projects", expense.ListProjectsHandler())
	protected.Post("/projects", expense.CreateProjectHandler())
	protected.Put("/projects/:id", expense.UpdateProjectHandler())
	protected.Delete("/projects/:id", expense.DeleteProjectHandler())

	// Giderler (projeye stok çıkışı)
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler())
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler())

	// Rezervler
	protected.Get("/reserves", reserve.ListReservesHandler())
	protected.Post("/reserves", reserve.CreateReserveHandler())
	protected.Put("/reserves/:id/status", reserve.SetReserveStatusHandler())
	protected.Delete("/reserves/:id", reserve.DeleteReserveHandler())

	// Envanter sayımı
	protected.Post("/audits", audit.StartAuditHandler())
	protected.Get("/audits", audit.ListAuditsHandler())
	protected.Get("/audits/:id", audit.GetAuditHandler())
	protected.Get("/audits/:id/summary", audit.AuditSummaryHandler())
	protected.Put("/audits/:id/items/:itemId", audit.SetActualStockHandler())
	protected.Post("/audits/:id/verify", audit.VerifyItemsHandler())
	protected.Post("/audits/:id/confirm", audit.ConfirmAuditHandler())

	// Hareket günlüğü
	protected.Get("/history", history.ListHistoryHandler())
	protected.Get("/history/export", history.ExportHistoryHandler())

	// Ayarlar
	protected.Get("/settings/:section", settings.GetSettingHandler())
	protected.Put("/settings/:section", auth.RequireRole(models.RoleAdmin), settings.SaveSettingHandler())

	// Metrik sunucusu (opsiyonel, ayrı listener)
	if cfg.MetricsAddr != "" {
		go func() {
			log.Println("Metrik sunucusu çalışıyor:", cfg.MetricsAddr)
			if err := metrics.NewServer(cfg.MetricsAddr).Start(); err != nil {
				log.Println("Metrik sunucusu durdu:", err)
			}
		}()
	}

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
