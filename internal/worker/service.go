package worker

import (
	"context"
	"errors"
	"time"

	"github.com/loopiify-next/internal/config"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	dueJobPollInterval = time.Minute
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
	if s.consumer != nil && s.consumer.FollowupService != nil {
		go s.runDueJobLoop(ctx)
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

// runDueJobLoop 每分钟投递一次到期的计划消息
func (s *Service) runDueJobLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.FollowupService == nil {
		return
	}
	runOnce := func() {
		count, err := s.consumer.FollowupService.ProcessDueJobs(ctx)
		if err != nil {
			logger.Warnw("worker_process_due_jobs_failed", "error", err)
			return
		}
		if count > 0 {
			logger.Infow("worker_due_jobs_processed", "count", count)
		}
	}
	runOnce()

	ticker := time.NewTicker(dueJobPollInterval)
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
