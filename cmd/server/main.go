package main

import (
	"crownfall-server/internal/engine"
	"crownfall-server/internal/server"
	"crownfall-server/internal/version"
	"crownfall-server/pkg/logger"
	"flag"
	"os"
	"os/signal"
	"syscall"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed string
	var headless int
	var difficulty string
	var fog bool
	// Читаем флаг -seed. По умолчанию пусто (значит сгенерировать случайно).
	flag.StringVar(&seed, "seed", "", "World seed (empty for random)")
	flag.IntVar(&headless, "headless", 0, "Simulate N turns without serving and exit")
	flag.StringVar(&difficulty, "difficulty", "normal", "Difficulty tag")
	flag.BoolVar(&fog, "fog", true, "Fog of war")
	flag.Parse()

	logger.Log.Info("Starting Crownfall...")
	logger.Log.Info(version.String())

	// Формируем конфиг
	cfg := engine.NewConfig()
	cfg.Difficulty = difficulty
	cfg.FogOfWar = fog
	if seed != "" {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit seed: %s", cfg.Seed)
	} else {
		logger.Log.Infof("🎲 Using random seed: %s", cfg.Seed)
	}

	// 2. Инициализация сессии
	session := engine.NewSession(cfg)

	// РЕЖИМ СИМУЛЯЦИИ: прокрутить партию и выйти
	if headless > 0 {
		logger.Log.Infof("💿 Mode: headless simulation, %d turns", headless)
		snap := session.RunHeadless(headless)
		if snap.GameOver {
			logger.Log.Infof("Game over on turn %d, winner: %s", snap.Turn, snap.WinnerID)
		} else {
			logger.Log.Infof("Simulation stopped on turn %d, no winner yet", snap.Turn)
		}
		return
	}

	port := os.Getenv("CF_PORT")
	if port == "" {
		port = "8080"
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(session, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")
	logger.Log.Info("Done.")
}
