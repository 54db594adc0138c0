package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger

func Init() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	log = l
	return nil
}

// L returns the process logger. Falls back to a no-op logger so tests can
// use packages without calling Init.
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
