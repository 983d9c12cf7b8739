package main

import (
	"context"
	"log"

	"Sierra_Connect/internal/config"
	"Sierra_Connect/internal/model"
	"Sierra_Connect/internal/pkg"
	"Sierra_Connect/internal/repository/mysql"
	"Sierra_Connect/internal/repository/redis"
	"Sierra_Connect/internal/router"
	"Sierra_Connect/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pkg.InitSecrets(cfg.AccessSecret, cfg.RefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		log.Fatalf("init mysql: %v", err)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("init redis: %v", err)
	}

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Event{},
		&model.Notification{},
		&model.UserCommunity{},
		&model.UserEvent{},
		&model.UserLikedEvent{},
		&model.ActivityOutbox{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// outbox投递器：开了kafka就发kafka，否则打日志
	sender := service.LogSender
	if cfg.KafkaEnabled {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Fatalf("init kafka: %v", err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	relayer := service.NewOutboxRelayer(mysql.DB, sender)
	go relayer.Run(context.Background())

	smtpCfg := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	r := router.InitRouter(mysql.DB, smtpCfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
