package utils

import (
	"go.uber.org/zap"
)

var Logger *zap.Logger

func InitLogger(env string) error {
	var err error
	if env == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	return err
}

func GetLogger() *zap.Logger {
	if Logger == nil {
		if err := InitLogger("production"); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	return Logger
}
