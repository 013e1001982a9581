package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

var initOnce sync.Once

// Init инициализирует глобальный логгер. Вызывается один раз при
// старте приложения (main.go) или из TestMain; повторные вызовы
// безопасны и ничего не меняют.
func Init() {
	initOnce.Do(func() {
		Log = logrus.New()

		// Уровень логирования читается из окружения.
		// По умолчанию - "info". Для отладки движка - "debug".
		levelName, ok := os.LookupEnv("LOG_LEVEL")
		if !ok {
			levelName = "info"
		}
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			level = logrus.InfoLevel
		}
		Log.SetLevel(level)

		// "json" - для продакшена и сбора логов.
		// "text" - для удобной разработки.
		if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
			Log.SetFormatter(&logrus.JSONFormatter{})
		} else {
			Log.SetFormatter(&logrus.TextFormatter{
				FullTimestamp: true,
				ForceColors:   true,
			})
		}

		Log.SetOutput(os.Stdout)
	})
}

// Component возвращает entry с проставленным полем component -
// короткий путь для подсистем движка.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
