package utils

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// NewGormLogger routes GORM's SQL logging through zap. Lookups that miss are
// an expected outcome of login and ownership checks and are not logged.
func NewGormLogger(l *zap.Logger) gormlogger.Interface {
	return gormlogger.New(zap.NewStdLog(l.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
