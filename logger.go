package yamlmodule

import (
	"reflect"
	"strings"

	"github.com/miorlan/yamlmodule/host"
	"github.com/rs/zerolog"
)

// hostLogWriter feeds zerolog records into the host project's log, one
// record per Info call.
type hostLogWriter struct {
	log host.Logger
}

func (w hostLogWriter) Write(p []byte) (int, error) {
	w.log.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// logger returns the plugin logger for project. Without an explicit logger
// records go to the project log; without a project they are dropped.
func (c *Config) logger(project host.Project) zerolog.Logger {
	if c.Logger != nil {
		return c.Logger.Level(c.LogLevel)
	}
	if project == nil || isNil(project.Logger()) {
		return zerolog.Nop()
	}
	return zerolog.New(hostLogWriter{log: project.Logger()}).
		Level(c.LogLevel).
		With().
		Str("plugin", "yamlmodule").
		Logger()
}

// isNil reports whether log is nil, including a nil pointer held in the
// interface.
func isNil(log host.Logger) bool {
	if log == nil {
		return true
	}
	v := reflect.ValueOf(log)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
