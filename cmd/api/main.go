package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"opsdesk/internal/config"
	"opsdesk/internal/database"
	"opsdesk/internal/middleware"
	"opsdesk/internal/modules/auth"
	"opsdesk/internal/modules/catalog"
	"opsdesk/internal/modules/customer"
	"opsdesk/internal/modules/invoice"
	"opsdesk/internal/modules/lead"
	"opsdesk/internal/modules/note"
	"opsdesk/internal/modules/notify"
	"opsdesk/internal/modules/staff"
	"opsdesk/internal/modules/work"
	jwtsvc "opsdesk/internal/pkg/jwt"
	"opsdesk/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	leadRepo := repository.NewLeadRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	workRepo := repository.NewWorkRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notify.NewHub()
	defer hub.Close()
	notifyService := notify.NewService(hub)
	wsHandler := notify.NewWSHandler(hub, j)

	authService := auth.NewService(staffRepo, j)
	authHandler := auth.NewHandler(authService)

	leadService := lead.NewService(leadRepo, customerRepo, workRepo, serviceRepo, notifyService)
	leadHandler := lead.NewHandler(leadService)

	customerService := customer.NewService(customerRepo, serviceRepo)
	customerHandler := customer.NewHandler(customerService)

	catalogService := catalog.NewService(serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	staffService := staff.NewService(staffRepo)
	staffHandler := staff.NewHandler(staffService)

	workService := work.NewService(workRepo, customerRepo, serviceRepo)
	workHandler := work.NewHandler(workService)

	invoiceService := invoice.NewService(invoiceRepo, customerRepo, notifyService)
	invoiceHandler := invoice.NewHandler(invoiceService)

	noteService := note.NewService(noteRepo, leadRepo, customerRepo)
	noteHandler := note.NewHandler(noteService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/ws", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterRoutes(protected)
			leadHandler.RegisterRoutes(protected)
			customerHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			workHandler.RegisterRoutes(protected)
			invoiceHandler.RegisterRoutes(protected)
			noteHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				staffHandler.RegisterRoutes(admin)
				catalogHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
