package service

import (
	"context"
	"log"
	"time"

	"Sierra_Connect/internal/model"
	"Sierra_Connect/internal/pkg"
	"Sierra_Connect/internal/repository/mysql"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.ActivityOutbox) error

// OutboxRelayer 定时把待投递的关系变更事件发出去。
// 核心流程本身不生成通知，下游消费方订阅这些事件后自行决定。
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// 投递一批，失败的记重试，下游靠事件幂等兜底
func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 按用户ID分区投递到kafka
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ActivityOutbox) error {
		return p.Send(ctx, ob.UserID, []byte(ob.Payload))
	}
}

// LogSender 本地开发用，只打日志
func LogSender(ctx context.Context, ob *model.ActivityOutbox) error {
	log.Printf("OUTBOX SEND type=%s user=%s subject=%s payload=%s", ob.EventType, ob.UserID, ob.SubjectID, ob.Payload)
	return nil
}
