package store

import (
	"fmt"
	"strings"

	"github.com/joshuapare/threadkit/internal/logger"
)

// badgerLogger routes badger's printf-style logging into the global logger.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any)   { logger.Error(badgerMsg(format, args)) }
func (badgerLogger) Warningf(format string, args ...any) { logger.Warn(badgerMsg(format, args)) }
func (badgerLogger) Infof(format string, args ...any)    { logger.Debug(badgerMsg(format, args)) }
func (badgerLogger) Debugf(format string, args ...any)   { logger.Debug(badgerMsg(format, args)) }

func badgerMsg(format string, args []any) string {
	return "badger: " + strings.TrimSpace(fmt.Sprintf(format, args...))
}
