package notify

import (
	"context"
	"log"

	"scan-viewer/internal/domain/port"
)

// LogReporter пишет ошибки в общий лог
type LogReporter struct{}

func (LogReporter) Report(ctx context.Context, op string, err error) {
	log.Printf("ERROR %s: %v", op, err)
}

// MultiReporter отправляет ошибку во все каналы по очереди
type MultiReporter []port.ErrorReporter

func (m MultiReporter) Report(ctx context.Context, op string, err error) {
	for _, r := range m {
		if r != nil {
			r.Report(ctx, op, err)
		}
	}
}

var (
	_ port.ErrorReporter = LogReporter{}
	_ port.ErrorReporter = MultiReporter(nil)
)
