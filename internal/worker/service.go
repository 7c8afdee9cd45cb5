package worker

import (
	"context"
	"errors"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	overdueSweepInterval  = time.Minute
	overdueSweepBatchSize = 100
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.InvoiceService != nil {
		go s.runOverdueSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runOverdueSweepLoop 周期性兜底扫描到期未付账单
// 延迟任务可能因队列重启丢失，扫描保证最终标记。
func (s *Service) runOverdueSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.InvoiceService == nil {
		return
	}
	runOnce := func() {
		marked, err := s.consumer.InvoiceService.SweepOverdue(time.Now(), overdueSweepBatchSize)
		if err != nil {
			logger.Warnw("worker_overdue_sweep_failed", "error", err)
			return
		}
		if marked > 0 {
			logger.Infow("worker_overdue_sweep_done", "marked", marked)
		}
	}
	runOnce()

	ticker := time.NewTicker(overdueSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
