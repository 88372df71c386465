package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New инициализирует логгер. В продакшн режиме (GIN_MODE=release) пишет json
// уровня info, в остальных окружениях - текст уровня debug.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	if os.Getenv("GIN_MODE") == "release" {
		l.SetFormatter(new(logrus.JSONFormatter))
		l.SetLevel(logrus.InfoLevel)
		return l
	}

	l.SetFormatter(new(logrus.TextFormatter))
	l.SetLevel(logrus.DebugLevel)
	return l
}
