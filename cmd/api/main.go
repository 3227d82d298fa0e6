package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/okadri/splitmate/docs"
	"github.com/okadri/splitmate/internal/config"
	"github.com/okadri/splitmate/internal/database"
	"github.com/okadri/splitmate/internal/expense"
	"github.com/okadri/splitmate/internal/expense/draft"
	"github.com/okadri/splitmate/internal/expense/split"
	"github.com/okadri/splitmate/internal/group"
	"github.com/okadri/splitmate/internal/notification"
	"github.com/okadri/splitmate/internal/person"
	mw "github.com/okadri/splitmate/pkg/middleware"
)

// @title           SplitMate API
// @version         1.0
// @description     Shared expense tracking with live split drafts
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Split calculation engine, shared by finalized expenses and live drafts
	splitFactory := split.NewFactory(split.Limits{
		MinShares: 1,
		MaxShares: cfg.Split.MaxShares,
	})
	splitValidator := split.NewValidator(cfg.Split.AmountTolerance, cfg.Split.PercentTolerance)

	// Person feature
	personRepo := person.NewRepository(db)
	personService := person.NewService(personRepo)
	personHandler := person.NewHandler(personService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Expense feature (with split engine injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory, splitValidator, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Draft feature: in-memory split editing sessions that finalize into expenses
	draftStore := draft.NewStore()
	debounce := time.Duration(cfg.Split.DebounceMs) * time.Millisecond
	draftService := draft.NewService(draftStore, splitFactory, splitValidator, expenseService, debounce, nil)
	draftHandler := draft.NewHandler(draftService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.UserContext)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/persons", personHandler.Routes())
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/drafts", draftHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
