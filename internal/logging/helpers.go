package logging

import (
	"maps"

	"github.com/dianliyang/portfolio/pkg/interfaces"
)

// WithFields attaches structured fields when the logger implements
// interfaces.FieldsLogger. Loggers without field support are returned as is.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}

	return logger
}
