package container

import (
	app "scan-viewer/internal/application"
	"scan-viewer/internal/domain/port"
)

type Container struct {
	ScanService    *app.ScanService
	ROIService     *app.ROIService
	SuggestService *app.SuggestService
}

func New(scans port.ScanRepository, rois port.ROIRepository, journal port.ROIJournal, detector port.RegionDetector) *Container {
	scanService := app.NewScanService(scans)
	roiService := app.NewROIService(rois, journal)
	suggestService := app.NewSuggestService(scanService, detector)

	return &Container{
		ScanService:    scanService,
		ROIService:     roiService,
		SuggestService: suggestService,
	}
}
