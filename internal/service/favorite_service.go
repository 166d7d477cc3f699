package service

import (
	"context"
	"errors"

	"nori/internal/middleware"
	"nori/internal/model"
	"nori/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteService はお気に入り単語のトグルと一覧を提供します
type FavoriteService interface {
	ToggleFavorite(ctx context.Context, userID uuid.UUID, wordID uint) (*model.ToggleFavoriteResponse, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*model.Word, error)
}

type favoriteService struct {
	db       *gorm.DB
	favRepo  repository.FavoriteRepository
	wordRepo repository.WordRepository
}

func NewFavoriteService(db *gorm.DB, favRepo repository.FavoriteRepository, wordRepo repository.WordRepository) FavoriteService {
	return &favoriteService{
		db:       db,
		favRepo:  favRepo,
		wordRepo: wordRepo,
	}
}

// ToggleFavorite はお気に入りの有無を反転させます。
// エッジが存在すれば削除して favorited=false、無ければ作成して favorited=true を返します。
func (s *favoriteService) ToggleFavorite(ctx context.Context, userID uuid.UUID, wordID uint) (*model.ToggleFavoriteResponse, error) {
	logger := middleware.GetLogger(ctx)

	var favorited bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 対象単語の存在確認。存在しないIDへのトグルは404
		if _, err := s.wordRepo.FindByID(ctx, tx, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_FOUND", "単語が見つかりません。", "word_id", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}

		_, err := s.favRepo.Find(ctx, tx, userID, wordID)
		if err == nil {
			if err := s.favRepo.Delete(ctx, tx, userID, wordID); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "お気に入りの解除に失敗しました。", "", err)
			}
			favorited = false
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "お気に入りの取得に失敗しました。", "", err)
		}

		favorite := &model.FavoriteWord{
			UserID: userID,
			WordID: wordID,
		}
		if err := s.favRepo.Create(ctx, tx, favorite); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "お気に入りの登録に失敗しました。", "", err)
		}
		favorited = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Info("Favorite toggled", "word_id", wordID, "favorited", favorited)
	return &model.ToggleFavoriteResponse{Favorited: favorited}, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*model.Word, error) {
	words, err := s.favRepo.FindWordsByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "お気に入りの取得に失敗しました。", "", err)
	}
	return words, nil
}
