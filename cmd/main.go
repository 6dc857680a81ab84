package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"scan-viewer/config"
	"scan-viewer/internal/api"
	"scan-viewer/internal/container"
	"scan-viewer/internal/infrastructure/logging"
	"scan-viewer/internal/infrastructure/storage"
	"scan-viewer/internal/infrastructure/vision"
)

func main() {
	compress := flag.String("compress", "", "compress the volume of the given scan and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logs := logging.Setup(logging.Config{
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer logs.Close()

	ctx := context.Background()

	// Хранилища сканов и областей
	scans := storage.NewFileScanStore(cfg.ScansDir)
	rois := storage.NewMemoryROIRepository()
	journal := storage.NewFileROIJournal(cfg.RoisDir)

	if *compress != "" {
		if err := scans.Compress(ctx, *compress); err != nil {
			log.Fatalf("Failed to compress scan %s: %v", *compress, err)
		}
		return
	}

	// Собираем сервисы приложения
	appContainer := container.New(scans, rois, journal, vision.NewGoCVDetector())
	if err := appContainer.ROIService.Restore(ctx); err != nil {
		log.Fatalf("Failed to restore rois: %v", err)
	}

	srv, err := api.NewServer(appContainer, cfg.AllowedOrigins)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	log.Printf("Server is listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
