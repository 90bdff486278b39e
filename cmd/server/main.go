package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chronoseal-server/internal/config"
	"chronoseal-server/internal/handler"
	"chronoseal-server/internal/middleware"
	"chronoseal-server/internal/repository"
	"chronoseal-server/internal/service"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Storage initialization is explicit and awaited: the server does not
	// accept requests until Mongo has answered a ping.
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancelConnect()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		log.Fatalf("MongoDB is not reachable: %v", err)
	}

	userRepo := repository.NewUserRepository(client, cfg.Database.Name)
	documentRepo := repository.NewDocumentRepository(client, cfg.Database.Name)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshTokenExpiration)
	userService := service.NewUserService(userRepo)
	documentService := service.NewDocumentService(documentRepo, cfg.Verify.BatchLimit)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	documentHandler := handler.NewDocumentHandler(documentService, cfg.Verify.MaxUploadBytes)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	protected.HandleFunc("/users/me", userHandler.GetMe).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PUT", "OPTIONS")

	protected.HandleFunc("/documents", documentHandler.Store).Methods("POST", "OPTIONS")
	protected.HandleFunc("/documents/upload", documentHandler.Upload).Methods("POST", "OPTIONS")
	protected.HandleFunc("/documents", documentHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/documents/verify-batch", documentHandler.VerifyBatch).Methods("POST", "OPTIONS")
	protected.HandleFunc("/documents/{id}", documentHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/documents/{id}", documentHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/documents/{id}/verify", documentHandler.Verify).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", healthHandler(client)).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting ChronoSeal server on %s (env: %s)", addr, cfg.Server.Env)
		log.Printf("Connected to MongoDB database %q", cfg.Database.Name)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Failed to disconnect from MongoDB: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func healthHandler(client *mongo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded","database":"unreachable"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"chronoseal-server"}`))
	}
}
