package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/studyflow/back/internal/config"
)

// New returns a JSON logger in production and a console logger everywhere else
func New(cfg *config.Config) (*zap.Logger, error) {
	if !cfg.IsProduction() {
		return zap.NewDevelopment()
	}

	zc := zap.NewProductionConfig()
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.InitialFields = map[string]interface{}{"service": "studyflow-backend"}

	return zc.Build()
}
