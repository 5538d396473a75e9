package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Setup aponta o log padrão para stdout e, se houver arquivo, também para
// um arquivo com rotação. O closer devolvido deve ser fechado no shutdown.
func Setup(opts Options) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if opts.File == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}
	}

	rotator := NewRotator(opts)
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	log.Printf("📝 Log em arquivo: %s (%dMB, %d backups, %d dias)", opts.File, opts.MaxSizeMB, opts.MaxBackups, opts.MaxAgeDays)
	return rotator
}

func NewRotator(opts Options) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
