package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HenryBuilds/commercio/config"
	"github.com/HenryBuilds/commercio/internal/events"
	"github.com/HenryBuilds/commercio/internal/repository"
	"github.com/HenryBuilds/commercio/internal/service"
	"github.com/HenryBuilds/commercio/pkg/database"
	"github.com/HenryBuilds/commercio/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// sweeper периодически снимает истёкшие резервы. Запускать можно в
// нескольких экземплярах: снятие идемпотентно.
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	var bus service.EventBus
	if cfg.Kafka.Enabled {
		pub := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer pub.Close()
		bus = pub
		log.Info("Kafka producer подключен", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	repos := repository.New(db)
	svc := service.NewServices(repos, bus)
	reservations := svc.Reservations

	ticker := time.NewTicker(cfg.Sweep.Interval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Sweeper запущен", zap.Duration("interval", cfg.Sweep.Interval))

	for {
		select {
		case <-ticker.C:
			released, err := reservations.ReleaseExpiredReservations(context.Background())
			if err != nil {
				log.Error("Не удалось снять истёкшие резервы", zap.Error(err))
				continue
			}
			if len(released) > 0 {
				log.Info("Истёкшие резервы сняты", zap.Int("count", len(released)))
			}
		case <-quit:
			log.Info("Sweeper остановлен")
			return
		}
	}
}
