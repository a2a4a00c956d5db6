package main

import (
	"context"
	"log"

	fleet "github.com/DeepthiAddanki/Fleetrace/cmd/fleet-service"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/cache"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/config"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/db"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/rmq"
	driverrmq "github.com/DeepthiAddanki/Fleetrace/internal/driver/rmq"
	driverservice "github.com/DeepthiAddanki/Fleetrace/internal/driver/service"
)

func main() {
	logger.Init("fleet-service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	pg, err := db.NewPostgres(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pg.Close()

	if err := db.RunMigrations("migrations", cfg.DatabaseURL()); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	rdb, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("redis error: %v", err)
	}
	defer rdb.Close()

	// The broker is optional: presence events are a convenience for
	// downstream consumers, not part of the request contract.
	var events driverservice.EventPublisher
	if cfg.RabbitMQ.Host != "" {
		mq, err := rmq.NewRabbitMQ(cfg.RabbitMQURL())
		if err != nil {
			logger.Warn("rmq_disabled", "RabbitMQ unavailable, presence events disabled")
		} else {
			defer mq.Close()
			pub, err := driverrmq.NewPublisher(mq, cfg.RabbitMQ.Exchange)
			if err != nil {
				logger.Warn("rmq_disabled", "Failed to set up publisher, presence events disabled")
			} else {
				events = pub
			}
		}
	}

	if err := fleet.Run(cfg, pg.Pool, rdb, events); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
