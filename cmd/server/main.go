package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/dixa-voyado-bridge/internal/api"
	"github.com/ignite/dixa-voyado-bridge/internal/config"
	"github.com/ignite/dixa-voyado-bridge/internal/dixa"
	"github.com/ignite/dixa-voyado-bridge/internal/eventlog"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/background"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/logger"
	"github.com/ignite/dixa-voyado-bridge/internal/service/csat"
	"github.com/ignite/dixa-voyado-bridge/internal/service/review"
	"github.com/ignite/dixa-voyado-bridge/internal/voyado"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	log.Printf("Starting %s", api.ServiceName)

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedactPII(cfg.Logging.RedactEnabled())

	if cfg.Voyado.APIKey == "" {
		log.Println("Warning: VOYADO_API_KEY not set — Voyado calls will be rejected upstream")
	}
	if cfg.Dixa.APIToken == "" {
		log.Println("Warning: DIXA_API_TOKEN not set — review webhooks must carry dixaApiToken")
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", port)

	crm := voyado.NewClient(cfg.Voyado)
	inbox := dixa.NewClient(cfg.Dixa)

	// Latest-event sink: in-memory by default, Redis when configured so
	// GET /latest-csat works across replicas.
	var sink eventlog.Sink = eventlog.NewMemorySink()
	var redisClient *redis.Client
	if cfg.EventLog.Backend == "redis" && cfg.EventLog.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.EventLog.RedisAddr})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed (%s): %v — falling back to in-memory event log", cfg.EventLog.RedisAddr, err)
			redisClient.Close()
			redisClient = nil
		} else {
			sink = eventlog.NewRedisSink(redisClient, cfg.EventLog.RedisKey)
			log.Printf("Redis connected: %s (shared event log enabled)", cfg.EventLog.RedisAddr)
		}
		pingCancel()
	}

	runner := background.New()

	csatService := csat.NewService(crm, sink, runner, cfg.Voyado.CSATSchemaID)
	reviewService := review.NewService(crm, func(tokenOverride string) review.Inbox {
		if tokenOverride != "" {
			return inbox.WithToken(tokenOverride)
		}
		return inbox
	}, cfg.Dixa.APIToken, cfg.Dixa.EmailIntegrationID, cfg.Voyado.ReviewSchemaID)

	handlers := api.NewHandlers(csatService, reviewService, crm, inbox, sink, cfg.Voyado.CSATSchemaID)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      api.SetupRoutes(handlers),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: server shutdown: %v", err)
	}

	// Let in-flight CSAT awards finish before exiting.
	if !runner.Drain(10 * time.Second) {
		log.Println("Warning: background tasks did not finish before timeout")
	}

	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Shutdown complete")
}
