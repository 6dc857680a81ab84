// Команда viewer открывает скан с сервера без браузера: показывает срез,
// добавляет и удаляет области, сохраняет их и пишет канву в PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"scan-viewer/config"
	app "scan-viewer/internal/application"
	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
	"scan-viewer/internal/infrastructure/logging"
	"scan-viewer/internal/infrastructure/notify"
	"scan-viewer/internal/infrastructure/remote"
	"scan-viewer/internal/infrastructure/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		server  = flag.String("server", cfg.ServerURL, "scan server url")
		scanID  = flag.String("scan", "", "scan uid")
		scroll  = flag.Int("scroll", 0, "slices to scroll before annotating")
		drag    = flag.String("drag", "", "drag gesture as startX,startY,endX,endY")
		colour  = flag.String("color", "#ff0000", "roi color")
		erase   = flag.String("erase", "", "roi group (color) to delete")
		save    = flag.Bool("save", false, "save rois on the server")
		suggest = flag.Bool("suggest", false, "print suggested regions for the current slice")
		out     = flag.String("out", "", "write the canvas to this png file")
		size    = flag.Int("size", 512, "canvas size in pixels")
	)
	flag.Parse()

	logs := logging.Setup(logging.Config{
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer logs.Close()

	if *scanID == "" {
		log.Fatal("-scan is required")
	}

	ctx := context.Background()

	client, err := remote.NewClient(*server, &http.Client{Timeout: time.Minute})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	meta, err := client.Metadata(ctx, *scanID)
	if err != nil {
		log.Fatalf("Failed to open scan %s: %v", *scanID, err)
	}

	// Провайдер срезов подключается к реестру как загрузчик своей схемы
	provider := app.NewSliceProvider(client, app.WithRenderer(render.RenderGrayscale))
	registry := render.NewRegistry()
	registry.RegisterImageLoader(entity.DefaultScheme, provider.Resolve)

	viewport := render.NewViewport(*size, *size, registry)
	table := render.NewTable()
	picker, err := render.NewColorInput(*colour)
	if err != nil {
		log.Fatalf("Bad color: %v", err)
	}

	ctrl := app.NewAnnotationController(app.NewSession(*meta), provider, viewport, client, table, picker)
	ctrl.SetErrorReporter(reporter(cfg, *scanID))
	ctrl.Bind(ctx)

	if err := ctrl.Load(ctx); err != nil {
		log.Fatalf("Failed to load scan: %v", err)
	}

	if *scroll != 0 {
		if err := viewport.Scroll(ctx, *scroll); err != nil {
			log.Fatalf("Failed to scroll: %v", err)
		}
	}

	if *drag != "" {
		var ev entity.DragEvent
		if _, err := fmt.Sscanf(*drag, "%g,%g,%g,%g", &ev.StartX, &ev.StartY, &ev.EndX, &ev.EndY); err != nil {
			log.Fatalf("Bad drag %q: %v", *drag, err)
		}
		roi, err := ctrl.OnDragRelease(ctx, ev)
		if err != nil {
			log.Fatalf("Failed to add roi: %v", err)
		}
		log.Printf("Added roi %s on slice %d", roi.ID, roi.Slice)
	}

	if *erase != "" {
		ctrl.SelectRow(*erase)
		if err := ctrl.Erase(ctx); err != nil {
			log.Fatalf("Failed to erase: %v", err)
		}
	}

	if *save {
		if err := ctrl.Save(ctx); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	}

	if *suggest {
		s, err := client.Suggest(ctx, *scanID, ctrl.Session().SliceIndex())
		if err != nil {
			log.Fatalf("Failed to get suggestions: %v", err)
		}
		for _, r := range s.Regions {
			fmt.Printf("region x=%d y=%d %dx%d area=%d\n", r.X, r.Y, r.Width, r.Height, r.Area)
		}
	}

	if _, err := table.WriteTo(os.Stdout); err != nil {
		log.Printf("Error printing table: %v", err)
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()
		if err := viewport.EncodePNG(f); err != nil {
			log.Fatalf("Failed to write png: %v", err)
		}
	}
}

func reporter(cfg *config.Config, scanID string) port.ErrorReporter {
	reporters := notify.MultiReporter{notify.LogReporter{}}
	if !cfg.TelegramEnabled() {
		return reporters
	}

	tg, err := notify.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("Telegram notifications are disabled: %v", err)
		return reporters
	}
	return append(reporters, tg.ForScan(scanID))
}
