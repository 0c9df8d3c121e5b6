package pubsub

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rentdesk/rentdesk/internal/logger"
)

// WatermillLogger routes watermill's internal logs into the service logger
type WatermillLogger struct {
	logger *logger.Logger
	fields watermill.LogFields
}

func NewWatermillLogger(l *logger.Logger) watermill.LoggerAdapter {
	return &WatermillLogger{logger: l}
}

func (w *WatermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	w.logger.Errorw(msg, w.args(fields.Add(watermill.LogFields{"error": err}))...)
}

func (w *WatermillLogger) Info(msg string, fields watermill.LogFields) {
	w.logger.Infow(msg, w.args(fields)...)
}

func (w *WatermillLogger) Debug(msg string, fields watermill.LogFields) {
	w.logger.Debugw(msg, w.args(fields)...)
}

// Trace is very chatty in watermill, it goes to debug
func (w *WatermillLogger) Trace(msg string, fields watermill.LogFields) {
	w.logger.Debugw(msg, w.args(fields)...)
}

func (w *WatermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillLogger{logger: w.logger, fields: w.fields.Add(fields)}
}

func (w *WatermillLogger) args(fields watermill.LogFields) []interface{} {
	all := w.fields.Add(fields)
	args := make([]interface{}, 0, len(all)*2)
	for k, v := range all {
		args = append(args, k, v)
	}
	return args
}
