package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to SetLevel and SetModuleLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levels = []struct {
	name  string
	level logging.Level
}{
	Debug:   {"debug", logging.DEBUG},
	Info:    {"info", logging.INFO},
	Notice:  {"notice", logging.NOTICE},
	Warning: {"warning", logging.WARNING},
	Error:   {"error", logging.ERROR},
}

func (l Level) String() string {
	if int(l) < len(levels) {
		return levels[l].name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) backendLevel() logging.Level {
	if int(l) < len(levels) {
		return levels[l].level
	}
	return logging.NOTICE
}

// Log lines look like: [15:04:05.000] [renderer] [NOTICE] frame time: 12 ms
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// Logger interface implemented by named loggers.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Backend state. Levels are tracked here so they survive sink changes.
var (
	mu           sync.Mutex
	formatted    logging.Backend
	backend      logging.LeveledBackend
	defaultLevel = Notice
	moduleLevels = map[string]Level{}
)

// Create a new logger for a module. Module names match the package that
// owns the logger (renderer, scene/io, output, ...).
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// Redirect log output to sink.
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted = logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	rebuild()
}

// Set the verbosity of all modules without a module specific level.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	defaultLevel = level
	applyLevels()
}

// Set the verbosity of a single module; it takes precedence over SetLevel.
func SetModuleLevel(module string, level Level) {
	mu.Lock()
	defer mu.Unlock()

	moduleLevels[module] = level
	applyLevels()
}

// Drop all module specific levels.
func ResetModuleLevels() {
	mu.Lock()
	defer mu.Unlock()

	moduleLevels = map[string]Level{}
	rebuild()
}

// Report whether messages at level are emitted for module.
func IsEnabledFor(level Level, module string) bool {
	mu.Lock()
	defer mu.Unlock()
	return backend.IsEnabledFor(level.backendLevel(), module)
}

// Wrap the formatted sink in a fresh leveled backend and install it.
func rebuild() {
	backend = logging.AddModuleLevel(formatted)
	applyLevels()
	logging.SetBackend(backend)
}

func applyLevels() {
	backend.SetLevel(defaultLevel.backendLevel(), "")
	for module, level := range moduleLevels {
		backend.SetLevel(level.backendLevel(), module)
	}
}

// Parse a level name (debug, info, notice, warning, error).
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, entry := range levels {
		if entry.name == name {
			return Level(level), nil
		}
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

// Parse a module=level pair such as "renderer=debug".
func ParseModuleLevel(spec string) (string, Level, error) {
	module, name, ok := strings.Cut(spec, "=")
	module = strings.TrimSpace(module)
	if !ok || module == "" {
		return "", Notice, fmt.Errorf("log: expected module=level; got %q", spec)
	}
	level, err := ParseLevel(name)
	if err != nil {
		return "", Notice, err
	}
	return module, level, nil
}

func init() {
	SetSink(os.Stdout)
}
