package main

import (
	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/gowvec/internal/api"
	"github.com/knowledge-engine/gowvec/internal/config"
	"github.com/knowledge-engine/gowvec/internal/engine"
	"github.com/knowledge-engine/gowvec/internal/storage"
)

func main() {
	// 1. Config
	cfg := config.Load()

	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	entry := logger.WithField("service", "gow-api")

	entry.Info("Starting Graph-of-Words Vectorizer API Service")

	// 2. Storage
	store, err := storage.NewFileStorage(cfg.Storage.DataDir)
	if err != nil {
		entry.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// 3. Engine
	eng, err := engine.NewEngine(cfg, entry, store)
	if err != nil {
		entry.Fatalf("Failed to initialize engine: %v", err)
	}

	// 4. Corpus
	if err := eng.Load(); err != nil {
		entry.Fatalf("Failed to load corpus: %v", err)
	}

	// 5. API Server
	server := api.NewServer(eng, entry)

	entry.Infof("Graph-of-Words API ready on %s", cfg.Server.Addr)
	if err := server.Start(cfg.Server.Addr); err != nil {
		entry.Fatal(err)
	}
}
