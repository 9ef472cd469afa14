package logger

import (
	"log/slog"
	"os"
)

type Logger interface {
	Info(msg string)
	Error(msg string, err error)
	Debug(msg string)
}

type QuizLogger struct {
	logger *slog.Logger
}

func New(loggerName string) Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})
	attrs := []slog.Attr{slog.String("logger", loggerName)}
	h := handler.WithAttrs(attrs)
	logger := slog.New(h)
	return QuizLogger{logger}
}

func (ql QuizLogger) Info(msg string) {
	ql.logger.Info(msg)
}

func (ql QuizLogger) Error(msg string, err error) {
	if err != nil {
		e := slog.String("error", err.Error())
		ql.logger.Error(msg, e)
		return
	}
	ql.logger.Error(msg)
}

func (ql QuizLogger) Debug(msg string) {
	ql.logger.Debug(msg)
}
