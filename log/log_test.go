package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSubLoggers(t *testing.T) {
	t.Parallel()
	for _, sl := range []*SubLogger{
		Global,
		Engine,
		EventQueue,
		Dispatch,
		Portfolio,
		RiskGate,
		Exchange,
		Strategy,
		Statistics,
		Data,
		Config,
	} {
		require.NotNil(t, sl)
		require.NotNil(t, sl.sugared)
	}
}

func TestNewSubLogger(t *testing.T) {
	t.Parallel()
	_, err := NewSubLogger("")
	assert.ErrorIs(t, err, errEmptySubLoggerName)

	sl, err := NewSubLogger("TESTSCOPE")
	require.NoError(t, err)
	assert.Equal(t, "TESTSCOPE", sl.name)

	_, err = NewSubLogger("testscope")
	assert.ErrorIs(t, err, ErrSubLoggerAlreadyRegistered)
}

func TestNilSubLoggerDoesNotPanic(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		Info(nil, "hello")
		Infof(nil, "hello %s", "there")
		Infoln(nil, "hello")
		Debug(nil, "hello")
		Debugf(nil, "hello %s", "there")
		Debugln(nil, "hello")
		Warn(nil, "hello")
		Warnf(nil, "hello %s", "there")
		Warnln(nil, "hello")
		Error(nil, "hello")
		Errorf(nil, "hello %s", "there")
		Errorln(nil, "hello")
	})
}
