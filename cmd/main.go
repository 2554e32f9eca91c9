package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createRouteHandler "github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers/create_route"
	getManifestHandler "github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers/get_manifest"
	inboundMessageHandler "github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers/inbound_message"
	operatorLoginHandler "github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers/operator_login"
	operatorMessageHandler "github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers/operator_message"
	updateRouteHandler "github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers/update_route"
	validateTicketHandler "github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers/validate_ticket"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/middleware"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/config"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/archive"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
	crmClient "github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/crm"
	llmClient "github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/llm"
	mpesaClient "github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/mpesa"
	whatsappClient "github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/whatsapp"
	boardingService "github.com/kamaubrian/TwendeBus-AssistantService/internal/service/boarding"
	broadcastService "github.com/kamaubrian/TwendeBus-AssistantService/internal/service/broadcast"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/orchestrator"
	reportsService "github.com/kamaubrian/TwendeBus-AssistantService/internal/service/reports"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/tools"
	bookTicketUC "github.com/kamaubrian/TwendeBus-AssistantService/internal/usecase/book_ticket"
	"github.com/kamaubrian/TwendeBus-AssistantService/pkg/logger"
	"github.com/kamaubrian/TwendeBus-AssistantService/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TwendeBus-AssistantService...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (if enabled)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// The booking ledger is authoritative and in-memory; the archive is
	// an optional Postgres audit trail behind it.
	store := ledger.New()

	seedRoutes, err := config.LoadSeedRoutes(cfg.Seed.RoutesFile)
	if err != nil {
		log.Fatal("Failed to load route seed: %v", err)
	}
	for _, route := range seedRoutes {
		if _, err := store.CreateRoute(route); err != nil {
			log.Fatal("Failed to seed route %s-%s: %v", route.Origin, route.Destination, err)
		}
	}
	log.Info("Route inventory seeded: %d routes", len(seedRoutes))

	var auditRepo *archive.Repository
	if cfg.Archive.Enabled {
		db, err := sql.Open("postgres", cfg.Archive.DSN())
		if err != nil {
			log.Fatal("Failed to connect to archive database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Archive.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Archive.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Archive.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping archive database: %v", err)
		}
		auditRepo = archive.NewRepository(db)
		log.Info("Audit archive connected (host=%s, db=%s)", cfg.Archive.Host, cfg.Archive.DBName)
	} else {
		log.Info("Audit archive disabled")
	}

	// Typed nils must not leak into the nilable archiver interfaces.
	var ticketArchiver bookTicketUC.Archiver
	var complaintArchiver tools.ComplaintArchiver
	if auditRepo != nil {
		ticketArchiver = auditRepo
		complaintArchiver = auditRepo
	}

	// Initialize integration clients
	model := llmClient.NewClient(
		cfg.LLM.URL,
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		time.Duration(cfg.LLM.Timeout)*time.Second,
		log,
	)
	payments := mpesaClient.NewClient(
		cfg.Payments.URL,
		cfg.Payments.ConsumerKey,
		cfg.Payments.ConsumerSecret,
		cfg.Payments.ShortCode,
		time.Duration(cfg.Payments.Timeout)*time.Second,
		log,
	)
	messaging := whatsappClient.NewClient(
		cfg.Messaging.URL,
		cfg.Messaging.AccessToken,
		cfg.Messaging.PhoneNumberID,
		time.Duration(cfg.Messaging.Timeout)*time.Second,
		log,
	)
	contacts := crmClient.NewClient(
		cfg.CRM.URL,
		time.Duration(cfg.CRM.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (LLM=%s model=%s, Payments=%s, Messaging=%s, CRM=%s)",
		cfg.LLM.URL, cfg.LLM.Model, cfg.Payments.URL, cfg.Messaging.URL, cfg.CRM.URL)

	// Initialize use cases and services
	bookTicket := bookTicketUC.NewUseCase(store, payments, ticketArchiver, log)
	boarding := boardingService.NewService(store, log)
	broadcast := broadcastService.NewService(messaging, contacts, cfg.Conversation.BroadcastWorkers, log)
	reports := reportsService.NewService(store, log)

	// Assemble the per-role tool catalogues
	customerTools := tools.NewCustomerRegistry(tools.CustomerDeps{
		Ledger:  store,
		Gateway: payments,
		Booker:  bookTicket,
		Logger:  log,
	})
	operatorTools := tools.NewOperatorRegistry(tools.OperatorDeps{
		Ledger:      store,
		Reporter:    reports,
		Broadcaster: broadcast,
		Archiver:    complaintArchiver,
		Logger:      log,
	})

	// Load role prompts and build one orchestrator per role
	customerPrompt, err := config.LoadPrompt(cfg.Prompts.CustomerFile)
	if err != nil {
		log.Fatal("Failed to load customer prompt: %v", err)
	}
	operatorPrompt, err := config.LoadPrompt(cfg.Prompts.OperatorFile)
	if err != nil {
		log.Fatal("Failed to load operator prompt: %v", err)
	}

	loopCfg := orchestrator.Config{
		MaxToolRounds: cfg.Conversation.MaxToolRounds,
		HistoryLimit:  cfg.Conversation.HistoryLimit,
	}
	var recorder orchestrator.MetricsRecorder
	if metricsCollector != nil {
		recorder = metricsCollector
	}
	customerChat := orchestrator.New(customerTools, model, customerPrompt.System, loopCfg, log, recorder)
	operatorChat := orchestrator.New(operatorTools, model, operatorPrompt.System, loopCfg, log, recorder)

	// Initialize handlers
	inboundMessage := inboundMessageHandler.NewHandler(customerChat, messaging, cfg.Messaging.VerifyToken, log)
	operatorMessage := operatorMessageHandler.NewHandler(operatorChat, log)
	validateTicket := validateTicketHandler.NewHandler(boarding, log)
	createRoute := createRouteHandler.NewHandler(store, log)
	updateRoute := updateRouteHandler.NewHandler(store, log)
	getManifest := getManifestHandler.NewHandler(reports, log)

	credentials := make([]operatorLoginHandler.Credential, 0, len(cfg.Auth.Operators))
	for _, op := range cfg.Auth.Operators {
		credentials = append(credentials, operatorLoginHandler.Credential{
			Username:     op.Username,
			PasswordHash: op.PasswordHash,
		})
	}
	jwtSecret := []byte(cfg.Auth.JWTSecret)
	operatorLogin := operatorLoginHandler.NewHandler(
		credentials,
		jwtSecret,
		time.Duration(cfg.Auth.TokenTTL)*time.Minute,
		log,
	)

	// Configure router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Messaging provider webhook (provider-verified, no JWT)
	r.HandleFunc("/webhook", inboundMessage.HandleVerify).Methods(http.MethodGet)
	r.HandleFunc("/webhook", inboundMessage.Handle).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public: operator login
	api.HandleFunc("/auth/login", operatorLogin.Handle).Methods(http.MethodPost)

	// Protected: admin surface
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(jwtSecret))

	protected.HandleFunc("/operator/messages", operatorMessage.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/boarding/scan", validateTicket.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/routes", createRoute.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/routes/{routeId}", updateRoute.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/routes/{routeId}/manifest", getManifest.Handle).Methods(http.MethodGet)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
