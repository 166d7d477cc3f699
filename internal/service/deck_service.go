package service

import (
	"context"
	"errors"

	"nori/internal/middleware"
	"nori/internal/model"
	"nori/internal/repository"
	"nori/internal/study"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeckService は学習デッキの構築 (新規シャッフル or 保存セッションからの復元) を提供します
type DeckService interface {
	BuildDeck(ctx context.Context, userID uuid.UUID, exerciseType, level string) (*model.DeckResponse, error)
}

type deckService struct {
	db          *gorm.DB
	wordRepo    repository.WordRepository
	favRepo     repository.FavoriteRepository
	progRepo    repository.ProgressRepository
	sessionRepo repository.SessionRepository
}

func NewDeckService(db *gorm.DB, wordRepo repository.WordRepository, favRepo repository.FavoriteRepository, progRepo repository.ProgressRepository, sessionRepo repository.SessionRepository) DeckService {
	return &deckService{
		db:          db,
		wordRepo:    wordRepo,
		favRepo:     favRepo,
		progRepo:    progRepo,
		sessionRepo: sessionRepo,
	}
}

// BuildDeck はデッキを構築します。
//  1. レベルの全単語を取得 (favorites はお気に入りJOIN)
//  2. ベースセッション (type-base) があればその順序を採用。カタログとのズレは補正して保存し直す
//  3. 無ければ新規シャッフルして cursor 0 で永続化
//  4. アクティブセッション (type) があれば復習モードのデッキとして復元
//  5. 通常デッキの開始位置は進捗レコードから「最初の未完了単語」を導出
func (s *deckService) BuildDeck(ctx context.Context, userID uuid.UUID, exerciseType, level string) (*model.DeckResponse, error) {
	logger := middleware.GetLogger(ctx)

	if !model.IsValidExerciseType(exerciseType) {
		return nil, model.NewAppError("INVALID_TYPE", "出題形式の指定が正しくありません。", "type", model.ErrInvalidInput)
	}
	normalized := model.NormalizeLevel(level)
	if !model.IsValidLevel(normalized) {
		return nil, model.NewAppError("INVALID_LEVEL", "レベルの指定が正しくありません。", "level", model.ErrInvalidInput)
	}

	// favorites は進捗もセッションも持たない。毎回シャッフルして返すだけ
	if normalized == model.PseudoLevelFavorites {
		words, err := s.favRepo.FindWordsByUser(ctx, s.db, userID)
		if err != nil {
			logger.Error("Failed to load favorite words", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの構築に失敗しました。", "", err)
		}
		byID := wordsByID(words)
		order := study.Shuffle(wordIDsOf(words))
		return &model.DeckResponse{
			Words:        wordsInOrder(order, byID),
			CurrentIndex: 0,
			ReviewMode:   false,
			TotalCount:   len(words),
		}, nil
	}

	words, err := s.wordRepo.FindByLevel(ctx, s.db, normalized)
	if err != nil {
		logger.Error("Failed to load words for deck", "error", err, "level", normalized)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの構築に失敗しました。", "", err)
	}
	// 空カタログはエラーではなく空デッキ
	if len(words) == 0 {
		return &model.DeckResponse{Words: []*model.Word{}, CurrentIndex: 0, ReviewMode: false, TotalCount: 0}, nil
	}

	byID := wordsByID(words)
	catalogIDs := wordIDsOf(words)

	baseOrder, err := s.resolveBaseOrder(ctx, userID, exerciseType, normalized, catalogIDs)
	if err != nil {
		return nil, err
	}

	// アクティブセッションがあれば復習モードを再開する
	active, err := s.sessionRepo.Find(ctx, s.db, userID, exerciseType, normalized)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to load active review session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの構築に失敗しました。", "", err)
	}
	if active != nil && len(active.WordIDs) > 0 {
		// 削除済み単語のIDは黙って落とす (自己修復)
		reviewIDs := study.FilterKnown(active.WordIDs, catalogIDs)
		if len(reviewIDs) > 0 {
			return &model.DeckResponse{
				Words:        wordsInOrder(reviewIDs, byID),
				CurrentIndex: study.ClampIndex(active.CurrentIndex, len(reviewIDs)),
				ReviewMode:   true,
				TotalCount:   len(catalogIDs),
			}, nil
		}
	}

	// 通常パス。開始位置はベースセッションのカーソルではなく進捗から導く
	records, err := s.progRepo.FindByContext(ctx, s.db, userID, exerciseType, normalized)
	if err != nil {
		logger.Error("Failed to load progress for deck", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの構築に失敗しました。", "", err)
	}
	completed := make(map[uint]bool, len(records))
	for _, r := range records {
		completed[r.WordID] = r.Completed
	}

	return &model.DeckResponse{
		Words:        wordsInOrder(baseOrder, byID),
		CurrentIndex: study.FirstIncompleteIndex(baseOrder, completed),
		ReviewMode:   false,
		TotalCount:   len(catalogIDs),
	}, nil
}

// resolveBaseOrder はベースデッキの順序を返します。保存済みの順序が現在の
// カタログと食い違う場合は補正して保存し直し、存在しない場合は新規に
// シャッフルして永続化します。
func (s *deckService) resolveBaseOrder(ctx context.Context, userID uuid.UUID, exerciseType, level string, catalogIDs []uint) ([]uint, error) {
	logger := middleware.GetLogger(ctx)
	baseType := model.BaseSessionType(exerciseType)

	base, err := s.sessionRepo.Find(ctx, s.db, userID, baseType, level)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to load base session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの構築に失敗しました。", "", err)
	}

	if base != nil && len(base.WordIDs) > 0 {
		order, repaired := study.RepairOrder(base.WordIDs, catalogIDs)
		if repaired {
			err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				return s.sessionRepo.Upsert(ctx, tx, &model.ReviewSession{
					UserID:       userID,
					Type:         baseType,
					Level:        level,
					WordIDs:      order,
					CurrentIndex: base.CurrentIndex,
				})
			})
			if err != nil {
				logger.Error("Failed to persist repaired base order", "error", err)
				return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの保存に失敗しました。", "", err)
			}
			logger.Info("Base deck order repaired", "type", baseType, "level", level)
		}
		return order, nil
	}

	order := study.Shuffle(catalogIDs)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.sessionRepo.Upsert(ctx, tx, &model.ReviewSession{
			UserID:       userID,
			Type:         baseType,
			Level:        level,
			WordIDs:      order,
			CurrentIndex: 0,
		})
	})
	if err != nil {
		logger.Error("Failed to persist fresh base order", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの保存に失敗しました。", "", err)
	}
	return order, nil
}

// --- デッキ構築用の小さなヘルパー ---

func wordsByID(words []*model.Word) map[uint]*model.Word {
	byID := make(map[uint]*model.Word, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}
	return byID
}

func wordIDsOf(words []*model.Word) []uint {
	ids := make([]uint, 0, len(words))
	for _, w := range words {
		ids = append(ids, w.ID)
	}
	return ids
}

func wordsInOrder(order []uint, byID map[uint]*model.Word) []*model.Word {
	words := make([]*model.Word, 0, len(order))
	for _, id := range order {
		if w, ok := byID[id]; ok {
			words = append(words, w)
		}
	}
	return words
}
