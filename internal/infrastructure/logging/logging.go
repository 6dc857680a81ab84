// Package logging направляет стандартный лог в файл с ротацией.
package logging

import (
	"io"
	"log"

	"github.com/natefinch/lumberjack"
)

// Config настройки файла лога
type Config struct {
	File       string
	MaxSizeMB  int
	MaxAgeDays int
}

// Setup переключает log на ротируемый файл. Без имени файла лог остаётся в stderr.
// Возвращённый Closer закрывает файл.
func Setup(cfg Config) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if cfg.File == "" {
		return nopCloser{}
	}

	l := &lumberjack.Logger{
		Filename: cfg.File,
		MaxSize:  cfg.MaxSizeMB,  // megabytes
		MaxAge:   cfg.MaxAgeDays, // days
	}
	log.SetOutput(l)
	log.Printf("Sending log messages to %s", cfg.File)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
