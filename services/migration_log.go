package services

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogEntry is one line of migration output as shown to the operator.
type LogEntry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Stage   string         `json:"stage,omitempty"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// MigrationLog collects migration output. Every entry is kept, handed to the
// optional sink as it happens and forwarded to the service logger.
type MigrationLog struct {
	mu      sync.Mutex
	entries []LogEntry
	sink    func(LogEntry)
	logger  *zap.Logger
	now     func() time.Time
}

func NewMigrationLog(logger *zap.Logger, sink func(LogEntry)) *MigrationLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MigrationLog{sink: sink, logger: logger, now: time.Now}
}

func (l *MigrationLog) Info(stage, msg string, fields ...zap.Field) {
	l.append(zapcore.InfoLevel, stage, msg, fields)
}

func (l *MigrationLog) Warn(stage, msg string, fields ...zap.Field) {
	l.append(zapcore.WarnLevel, stage, msg, fields)
}

func (l *MigrationLog) Error(stage, msg string, err error, fields ...zap.Field) {
	l.append(zapcore.ErrorLevel, stage, msg, append(fields, zap.Error(err)))
}

func (l *MigrationLog) append(level zapcore.Level, stage, msg string, fields []zap.Field) {
	entry := LogEntry{
		Time:    l.now(),
		Level:   level.String(),
		Stage:   stage,
		Message: msg,
	}
	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
		}
		entry.Fields = enc.Fields
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	sink := l.sink
	l.mu.Unlock()

	if ce := l.logger.Check(level, msg); ce != nil {
		ce.Write(append(fields, zap.String("stage", stage))...)
	}
	if sink != nil {
		sink(entry)
	}
}

// Entries returns a copy of everything logged so far.
func (l *MigrationLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
