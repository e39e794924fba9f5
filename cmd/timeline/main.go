// Package main is the entry point for the Timeline Engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/anthropics/timeline-engine/internal/config"
	"github.com/anthropics/timeline-engine/internal/ipc"
	"github.com/anthropics/timeline-engine/internal/store"
	"github.com/anthropics/timeline-engine/internal/timeline"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to configuration JSON file")
	flag.Parse()

	if *showVersion {
		fmt.Printf("timeline %s (commit=%s, built=%s)\n", version, commit, date)
		os.Exit(0)
	}

	// Resolve config path: --config flag > TL_CONFIG env > auto-discover next to exe.
	path := *configPath
	if path == "" {
		path = os.Getenv("TL_CONFIG")
	}
	if path == "" {
		path = discoverConfig()
	}
	if path == "" {
		log.Fatal("no config found. Place config.json next to the exe, use --config <path>, or set TL_CONFIG.")
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	engine := timeline.New(cfg, db)

	handler := &ipc.Handler{
		Engine:      engine,
		DB:          db,
		Estimates:   &store.EstimateRepo{},
		Simulations: &store.SimulationRepo{},
	}

	srv := ipc.NewServer(handler, cfg.ListenAddr)

	// Graceful shutdown on interrupt.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Println("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("timeline engine listening on %s", cfg.ListenAddr)

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// discoverConfig looks for config.json next to the executable, then in the cwd.
func discoverConfig() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "config.json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if _, err := os.Stat("config.json"); err == nil {
		return "config.json"
	}
	return ""
}
