package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// ZapLogger é a implementação concreta da interface Logger sobre o zap,
// com saída JSON (encoder de produção).
type ZapLogger struct {
	zl *zap.Logger
}

// NewLogger cria e retorna uma nova instância do Logger no nível informado
// ("debug", "info", "warn", "error"). Nível desconhecido cai para "info".
func NewLogger(level string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.Sampling = nil

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		zl = zap.NewNop()
	}
	return &ZapLogger{zl: zl}
}

// NewNopLogger devolve um Logger que descarta tudo (útil em testes).
func NewNopLogger() Logger {
	return &ZapLogger{zl: zap.NewNop()}
}

// Wrap adapta um *zap.Logger já configurado.
func Wrap(zl *zap.Logger) Logger {
	return &ZapLogger{zl: zl}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.zl.Error(msg, zap.Error(err))
}

// Fatal registra e encerra o processo (os.Exit(1) via zap).
func (l *ZapLogger) Fatal(msg string, err error) {
	l.zl.Fatal(msg, zap.Error(err))
}

// Sync descarrega buffers pendentes; chamar no encerramento do main.
func (l *ZapLogger) Sync() error {
	return l.zl.Sync()
}
