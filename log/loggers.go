package log

import "errors"

var errEmptySubLoggerName = errors.New("sub logger name must be set")

// Info takes a pointer sub logger and writes data at info level
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Info(data)
}

// Infoln takes a pointer sub logger and writes the arguments at info level
func Infoln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Info(v...)
}

// Infof takes a pointer sub logger and writes a formatted line at info level
func Infof(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Infof(data, v...)
}

// Debug takes a pointer sub logger and writes data at debug level
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Debug(data)
}

// Debugln takes a pointer sub logger and writes the arguments at debug level
func Debugln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Debug(v...)
}

// Debugf takes a pointer sub logger and writes a formatted line at debug level
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Debugf(data, v...)
}

// Warn takes a pointer sub logger and writes data at warn level
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Warn(data)
}

// Warnln takes a pointer sub logger and writes the arguments at warn level
func Warnln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Warn(v...)
}

// Warnf takes a pointer sub logger and writes a formatted line at warn level
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Warnf(data, v...)
}

// Error takes a pointer sub logger and writes data at error level
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Error(data)
}

// Errorln takes a pointer sub logger and writes the arguments at error level
func Errorln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Error(v...)
}

// Errorf takes a pointer sub logger and writes a formatted line at error level
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if sl == nil {
		return
	}
	sl.sugared.Errorf(data, v...)
}
