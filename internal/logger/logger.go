package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
	if os.Getenv("LOG_LEVEL") == "debug" {
		logg.SetLevel(logrus.DebugLevel)
	}
}

// Get devuelve el logger compartido de la aplicación.
func Get() *logrus.Logger {
	return logg
}
