package main

import (
	"database/sql"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	api "eventreg-request-service/internal/api/grpc"
	"eventreg-request-service/internal/api/grpc/interceptor"
	httpapi "eventreg-request-service/internal/api/http"
	"eventreg-request-service/internal/capacity"
	"eventreg-request-service/internal/client"
	"eventreg-request-service/internal/config"
	"eventreg-request-service/internal/directory"
	"eventreg-request-service/internal/logger"
	"eventreg-request-service/internal/repository/postgres"
	"eventreg-request-service/internal/security"
	"eventreg-request-service/internal/service"

	_ "github.com/lib/pq"
)

const serviceName = "request-service"

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting request service...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "grpc_address", cfg.GetServerAddress(), "http_address", cfg.GetHTTPAddress())
	logger.Info("Topology", "counter_mode", cfg.Capacity.Mode, "directory_mode", cfg.Directory.Mode, "atomic_reserve", cfg.AtomicReserveEnabled())

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

	if cfg.Database.RunMigrations {
		if err := postgres.Migrate(db); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			log.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("Database migrations applied")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	var tokenManager security.TokenManager
	if cfg.JWT.Secret != "" {
		tokenManager = security.NewTokenManager(cfg.JWT.Secret)
	} else {
		logger.Warn("JWT secret not set, authentication is disabled")
	}

	// Directories
	var events directory.EventDirectory
	var users directory.UserDirectory
	if cfg.Directory.Mode == config.ModeRemote {
		conn, err := client.Dial(cfg.Directory.Address, tokenManager, serviceName)
		if err != nil {
			log.Fatalf("Failed to dial directory: %v", err)
		}
		defer conn.Close()
		events = client.NewEventDirectoryClient(conn, cfg.DirectoryTimeout())
		users = client.NewUserDirectoryClient(conn, cfg.DirectoryTimeout())
	} else {
		events = directory.NewLocalEventDirectory(store.EventRepository)
		users = directory.NewLocalUserDirectory(store.UserRepository)
	}
	if ttl := cfg.UserCacheTTL(); ttl > 0 {
		users = directory.NewCachedUserDirectory(users, ttl)
	}

	// Confirmed counter
	var counter capacity.ConfirmedCounter
	if cfg.Capacity.Mode == config.ModeRemote {
		conn, err := client.Dial(cfg.Capacity.Address, tokenManager, serviceName)
		if err != nil {
			log.Fatalf("Failed to dial counter: %v", err)
		}
		defer conn.Close()
		counter = capacity.NewRemoteCounter(client.NewRequestClient(conn), cfg.CounterTimeout())
	} else {
		counter = capacity.NewLocalCounter(store.RequestRepository)
	}

	// Initialize Services
	requestSvc := service.NewRequestService(
		store.RequestRepository,
		events,
		users,
		capacity.NewOracle(events, counter),
		service.NewNotifier(cfg.Notification),
		cfg.AtomicReserveEnabled(),
	)
	eventStateSvc := service.NewEventStateService(store.EventRepository)

	// Set up gRPC server
	lis, err := net.Listen("tcp", cfg.GetServerAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetServerAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	interceptors := []grpc.UnaryServerInterceptor{interceptor.UnaryLogging()}
	if tokenManager != nil {
		interceptors = append(interceptors, interceptor.NewAuthInterceptor(tokenManager).Unary())
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))

	api.RegisterRequestServiceServer(s, api.NewRequestHandler(requestSvc))
	if cfg.Directory.Mode == config.ModeLocal {
		directoryHandler := api.NewDirectoryHandler(events, users)
		api.RegisterEventDirectoryServer(s, directoryHandler)
		api.RegisterUserDirectoryServer(s, directoryHandler)
	}

	// Register reflection service for grpcurl
	reflection.Register(s)

	// Set up HTTP server
	httpServer := &http.Server{
		Addr:    cfg.GetHTTPAddress(),
		Handler: httpapi.NewRouter(requestSvc, eventStateSvc, tokenManager),
	}
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		logger.Info("Shutting down...")
		_ = httpServer.Close()
		s.GracefulStop()
	}()

	logger.Info("gRPC server listening", "address", cfg.GetServerAddress())
	if err := s.Serve(lis); err != nil {
		logger.Error("Failed to serve gRPC", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
