// Command api runs the SENTIFY HTTP server: sentiment and emotion analysis,
// audio transcription, dataset upload, and the scheduled Instagram post.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/server"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.buildDate=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("SENTIFY API Server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "sentify: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}

	// Exits here when IBM_WATSON_API_KEY or IBM_WATSON_URL is missing.
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)
	utils.InitValidator()

	log.Info().
		Str("version", cfg.App.Version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Str("environment", cfg.App.Environment).
		Msg("Starting SENTIFY API Server")

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultStartupTimeout)
	srv, err := server.NewServer(ctx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Start()
}
