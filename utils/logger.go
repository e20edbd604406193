package utils

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// NewLogger returns a logfmt logger filtered at levelName ("debug", "info", "warn", "error")
func NewLogger(w io.Writer, levelName string) (log.Logger, error) {
	var option level.Option
	switch strings.ToLower(levelName) {
	case "debug":
		option = level.AllowDebug()
	case "info", "":
		option = level.AllowInfo()
	case "warn":
		option = level.AllowWarn()
	case "error":
		option = level.AllowError()
	case "none":
		option = level.AllowNone()
	default:
		return nil, errors.Errorf("[NewLogger] unknown log level %q", levelName)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, option)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}
