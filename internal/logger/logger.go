package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/mokykis/internal/config"
)

// New builds the application logger. Production emits JSON at info level,
// other environments the console encoder at warn level. verbose lowers the
// level to debug.
func New(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}
