// Package jobs は定期実行ジョブを管理します
package jobs

import (
	"context"
	"log/slog"
	"time"

	"nori/internal/repository"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// Scheduler は期限切れトークンの掃除などのバックグラウンドジョブを回します
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
	tokenRepo repository.TokenRepository
	logger    *slog.Logger
}

func NewScheduler(db *gorm.DB, tokenRepo repository.TokenRepository, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// Start は全ジョブを登録して非同期に実行を開始します
func (s *Scheduler) Start() {
	if _, err := s.scheduler.Every(1).Hour().Do(s.purgeExpiredTokens); err != nil {
		s.logger.Error("Failed to schedule token purge job", "error", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("Background scheduler started")
}

// Stop は実行中のジョブを止めます
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Background scheduler stopped")
}

// purgeExpiredTokens は期限切れの認証・パスワードリセットトークンを削除します
func (s *Scheduler) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.tokenRepo.DeleteExpired(ctx, s.db, time.Now())
	if err != nil {
		s.logger.Error("Failed to purge expired tokens", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("Expired tokens purged", "count", deleted)
	}
}
