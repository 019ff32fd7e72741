package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base = newBaseLogger(level)
	setupSubLoggers()
}

// SetVerbose widens or narrows the global level gate. Verbose enables
// debug output across every sub logger.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// Sync flushes any buffered log entries and should be deferred by the
// process entry point
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// NewSubLogger registers a new sub logger for an externally defined
// subsystem, eg a custom strategy wanting its own scope
func NewSubLogger(name string) (*SubLogger, error) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		return nil, errEmptySubLoggerName
	}
	name = strings.ToUpper(name)
	if _, ok := subLoggers[name]; ok {
		return nil, ErrSubLoggerAlreadyRegistered
	}
	return registerNewSubLogger(name), nil
}

func newBaseLogger(lvl zap.AtomicLevel) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	l, err := cfg.Build()
	if err != nil {
		// A fixed development config cannot fail to build, but never
		// leave callers with a nil logger
		return zap.NewNop()
	}
	return l
}

func registerNewSubLogger(name string) *SubLogger {
	sl := &SubLogger{
		name:    name,
		sugared: base.Named(name).Sugar(),
	}
	subLoggers[name] = sl
	return sl
}

func setupSubLoggers() {
	Global = registerNewSubLogger("LOG")
	Engine = registerNewSubLogger("ENGINE")
	EventQueue = registerNewSubLogger("EVENTQUEUE")
	Dispatch = registerNewSubLogger("DISPATCH")
	Portfolio = registerNewSubLogger("PORTFOLIO")
	RiskGate = registerNewSubLogger("RISK")
	Exchange = registerNewSubLogger("EXCHANGE")
	Strategy = registerNewSubLogger("STRATEGY")
	Statistics = registerNewSubLogger("STATISTICS")
	Data = registerNewSubLogger("DATA")
	Config = registerNewSubLogger("CONFIG")
}
