package commands

import (
	"strconv"

	"github.com/chenglinzhou/ashare-rotation/pkg/config"
	"github.com/chenglinzhou/ashare-rotation/pkg/logger"
)

func newLogger(cfg *config.Config) *logger.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logger.New(level, cfg.LogFormat)
}

// resolveDataDir prefers the --data flag over the environment.
func resolveDataDir(cfg *config.Config) string {
	if dataDir != "" {
		return dataDir
	}
	return cfg.DataDir
}

// formatNumber renders an integer with thousands separators.
func formatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
