package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentity"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"voice-lab/api"
	"voice-lab/audio"
	"voice-lab/internal"
	"voice-lab/observability"
	"voice-lab/repositories"
	"voice-lab/services"
	"voice-lab/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// The pipeline fails per request without the external tools, so a
	// missing binary is only worth a warning at boot.
	if err := audio.CheckFFmpegInstalled(config.FFmpegPath); err != nil {
		log.Warn("ffmpeg unavailable, non-WAV uploads will fail", "error", err)
	}
	if err := audio.CheckFFProbeInstalled(config.FFProbePath); err != nil {
		log.Warn("ffprobe unavailable, WebM containers will not be stream-inspected", "error", err)
	}

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Telemetry
	monitor := observability.NewMonitoringManager(log)
	go monitor.Listen(ctx)

	// 5. Analysis pipeline & services
	pipeline := audio.NewAnalyzer(log,
		audio.NewProber(log, audio.NewFFProbe(config.FFProbePath)),
		audio.NewConverter(log, config.FFmpegPath, config.TempDir),
	)
	analyzerService := services.NewAnalyzerService(log, pipeline, monitor)

	store, tokens, err := buildRecordingStore(log, config)
	if err != nil {
		return err
	}

	sessionRepository := repositories.NewSessionRepository(db, log)
	sessionService := services.NewSessionService(
		log, sessionRepository, analyzerService, store, monitor, config.UploadWait,
	)

	// 6. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	apiServer := api.NewServer(log, analyzerService, sessionService, tokens, config.MaxUploadSizeMB<<20)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           apiServer.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if config.EnableDebugServer {
		internal.StartDebugServer(db, config.DebugPort, "/inspect", internal.SessionMapper, monitor.StatsMap)
		log.Info("Debug inspector started", "url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
	}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}

// buildRecordingStore picks the upload backend: S3 behind Cognito
// temporary credentials when fully configured, a local directory as the
// dev fallback, nothing otherwise. The token manager only exists in the
// S3 case; the token endpoints switch off without it.
func buildRecordingStore(log *slog.Logger, config Config) (storage.IRecordingStore, *storage.TokenManager, error) {
	switch {
	case config.S3Bucket != "" && config.S3Region != "" && config.CognitoIdentityPoolID != "":
		cognitoClient := cognitoidentity.New(cognitoidentity.Options{
			Region: config.S3Region,
			// The identity pool guest flow is unauthenticated
			Credentials: aws.AnonymousCredentials{},
		})
		tokens := storage.NewTokenManager(log, storage.NewCognitoSource(cognitoClient, config.CognitoIdentityPoolID))
		s3Client := s3.New(s3.Options{
			Region:      config.S3Region,
			Credentials: tokens.Provider(),
		})
		log.Info("Recording uploads target S3", "bucket", config.S3Bucket, "region", config.S3Region)
		return storage.NewS3Store(log, s3Client, tokens, config.S3Bucket, config.S3Region), tokens, nil

	case config.RecordingsDir != "":
		store, err := storage.NewDiskStore(log, config.RecordingsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("recordings directory: %w", err)
		}
		log.Info("Recording uploads target the local disk", "dir", config.RecordingsDir)
		return store, nil, nil

	default:
		log.Warn("Recording uploads disabled: no S3 bucket and no recordings directory configured")
		return nil, nil, nil
	}
}
