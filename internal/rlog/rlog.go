// Package rlog builds the process-wide zap logger and adapts it to
// pkg/core.Logger, so the renderer core stays decoupled from the concrete
// logging library (the teacher's core.Logger interface, generalized).
package rlog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lumenforge/ppmpa/pkg/core"
)

// Log is the process-wide structured logger, built once by New and read
// thereafter. It follows the teacher's package-level logger.Log pattern.
var Log *zap.Logger

// New builds the process logger: a development console encoder when
// verbose is set, a production JSON encoder otherwise, and installs it as
// the package-level Log.
func New(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("rlog: building logger: %w", err)
	}

	Log = logger
	return logger, nil
}

// coreLogger adapts a *zap.Logger's Sugar to core.Logger's printf-style
// contract.
type coreLogger struct {
	sugar *zap.SugaredLogger
}

// AsCoreLogger wraps logger as a core.Logger for packages that only know
// about the printf-style seam.
func AsCoreLogger(logger *zap.Logger) core.Logger {
	return &coreLogger{sugar: logger.Sugar()}
}

func (c *coreLogger) Printf(format string, args ...interface{}) {
	c.sugar.Infof(format, args...)
}
