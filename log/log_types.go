package log

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Global vars related to the logger package
var (
	mu         sync.RWMutex
	base       *zap.Logger
	level      zap.AtomicLevel
	subLoggers = map[string]*SubLogger{}

	Global     *SubLogger
	Engine     *SubLogger
	EventQueue *SubLogger
	Dispatch   *SubLogger
	Portfolio  *SubLogger
	RiskGate   *SubLogger
	Exchange   *SubLogger
	Strategy   *SubLogger
	Statistics *SubLogger
	Data       *SubLogger
	Config     *SubLogger
)

// ErrSubLoggerAlreadyRegistered is returned when a sub logger name is
// registered twice
var ErrSubLoggerAlreadyRegistered = errors.New("sub logger already registered")

// SubLogger scopes output to a single subsystem so log lines can be
// traced back to the component that produced them
type SubLogger struct {
	name    string
	sugared *zap.SugaredLogger
}
