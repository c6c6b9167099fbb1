package logger

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// New инициализирует логгер под текущий режим gin: в release пишем JSON
// на уровне Info, иначе текст с Debug. LOG_LEVEL перекрывает уровень.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	if gin.Mode() == gin.ReleaseMode {
		l.SetFormatter(new(logrus.JSONFormatter))
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetFormatter(new(logrus.TextFormatter))
		l.SetLevel(logrus.DebugLevel)
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if level, err := logrus.ParseLevel(raw); err == nil {
			l.SetLevel(level)
		}
	}

	return l
}
