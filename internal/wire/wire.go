// Package wire provides dependency injection for the billid application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"

	cliadapter "github.com/example/billid/internal/adapters/cli"
	"github.com/example/billid/internal/adapters/clock"
	"github.com/example/billid/internal/app"
	"github.com/example/billid/internal/config"
	"github.com/example/billid/internal/logging"
	"github.com/example/billid/internal/ports/primary"
	"github.com/example/billid/internal/ports/secondary"
)

// Options carries the command-line settings that shape the services.
type Options struct {
	Dir     string // directory holding .billid/config.json
	Verbose bool
	NoColor bool
}

var (
	billingService primary.BillingService
	logger         *zap.Logger
	cfg            *config.Config
	initErr        error
	once           sync.Once
)

// Init initializes all services with the given options.
// Only the first call (or first accessor use) has any effect.
func Init(opts Options) error {
	once.Do(func() { initErr = initServices(opts) })
	return initErr
}

// Reset drops the initialized services so the next Init loads its options
// again. Each billid process builds one command tree; callers that build
// several in one process (the cli tests) reset between them. Not safe for
// concurrent use with Init.
func Reset() {
	if logger != nil {
		_ = logger.Sync()
	}
	billingService = nil
	logger = nil
	cfg = nil
	initErr = nil
	once = sync.Once{}
}

func ensureInit() {
	if err := Init(Options{Dir: "."}); err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}
}

// BillingService returns the singleton BillingService instance.
func BillingService() primary.BillingService {
	ensureInit()
	return billingService
}

// Config returns the loaded configuration.
func Config() *config.Config {
	ensureInit()
	return cfg
}

// Logger returns the shared logger.
func Logger() *zap.Logger {
	ensureInit()
	return logger
}

// Sync flushes the logger. It is a no-op before initialization.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices(opts Options) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	loaded, err := config.LoadOrDefault(dir)
	if err != nil {
		return err
	}
	cfg = loaded

	logger, err = logging.New(cfg.LogLevel, opts.Verbose)
	if err != nil {
		return err
	}

	if opts.NoColor || cfg.NoColor {
		color.NoColor = true
	}

	var clk secondary.Clock = clock.NewSystem()
	if cfg.FixedYear != 0 {
		clk = clock.FixedYear{Year: cfg.FixedYear}
		logger.Debug("billing year pinned by config", zap.Int("year", cfg.FixedYear))
	}

	billingService = app.NewBillingService(clk, logger)
	return nil
}

// BillingAdapter returns a new BillingAdapter writing text to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func BillingAdapter() *cliadapter.BillingAdapter {
	return BillingAdapterWithOutput(os.Stdout, "")
}

// BillingAdapterWithOutput returns a new BillingAdapter writing to the given output.
// An empty format falls back to the configured output format.
func BillingAdapterWithOutput(out io.Writer, format string) *cliadapter.BillingAdapter {
	ensureInit()
	if format == "" {
		format = cfg.Output
	}
	return cliadapter.NewBillingAdapter(billingService, out, format)
}
