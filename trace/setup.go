package trace

import (
	"fmt"
	"os"

	"spantrace/internal/config"
	"spantrace/trace/catapult"
	"spantrace/trace/catapult/backend"
)

const defaultTraceFile = "trace.json"

// Setup installs the reference backend using the process environment
// and, if SPANTRACE_CONFIG names a readable YAML file, that file's
// settings layered underneath the environment. It mirrors the plain
// TRACE env var convenience (spec §6): "1" opens trace.json, "stdout"
// and "stderr" write to the corresponding stream, any other non-empty
// value is treated as a file path, and an empty/unset value installs
// no collector at all.
//
// Setup returns the installed collector (nil if none was installed) so
// callers can still hold a direct reference for Shutdown ordering.
func Setup() (catapult.Collector, error) {
	cfg, err := config.Load(os.Getenv("SPANTRACE_CONFIG"))
	if err != nil {
		return nil, err
	}
	if cfg.MockMode {
		catapult.EnableMockMode()
	}
	return SetupWithConfig(cfg)
}

// SetupWithConfig installs the reference backend per an explicit
// config, bypassing environment discovery. Useful for tests and for
// callers that assemble Config themselves.
func SetupWithConfig(cfg config.Config) (catapult.Collector, error) {
	if cfg.Sink == "" {
		return nil, nil
	}

	opts := backend.Options{FlushInterval: cfg.FlushInterval}
	if cfg.MockMode {
		catapult.EnableMockMode()
		opts.Clock = catapult.NewMockClock()
	}

	var (
		be  *backend.Backend
		err error
	)
	switch cfg.Sink {
	case "1":
		be, err = backend.NewFile(defaultTraceFile, opts)
	case "stdout":
		be, err = backend.NewStdout(opts)
	case "stderr":
		be, err = backend.NewStderr(opts)
	default:
		be, err = backend.NewFile(cfg.Sink, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("trace: setup: %w", err)
	}

	Install(be)
	return be, nil
}
