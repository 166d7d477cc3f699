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

// StudyService は解答の評価・進捗の永続化・サイクル遷移を司るレビューエンジンです
type StudyService interface {
	SubmitAnswer(ctx context.Context, userID uuid.UUID, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error)
	ResolveCycle(ctx context.Context, userID uuid.UUID, req *model.ResolveCycleRequest) (*model.DeckResponse, error)
}

type studyService struct {
	db          *gorm.DB
	wordRepo    repository.WordRepository
	favRepo     repository.FavoriteRepository
	progRepo    repository.ProgressRepository
	sessionRepo repository.SessionRepository
}

func NewStudyService(db *gorm.DB, wordRepo repository.WordRepository, favRepo repository.FavoriteRepository, progRepo repository.ProgressRepository, sessionRepo repository.SessionRepository) StudyService {
	return &studyService{
		db:          db,
		wordRepo:    wordRepo,
		favRepo:     favRepo,
		progRepo:    progRepo,
		sessionRepo: sessionRepo,
	}
}

// SubmitAnswer は1問分の解答を処理します。
// 進捗をupsertし、次の位置へ進めるか、デッキ末尾ならサイクル完了を返します。
// 未習得の単語が残っていれば決定ポイント (ResolveCycle 待ち) になり、
// 全て習得済みならその場でフルリセットして新しいベースデッキを返します。
func (s *studyService) SubmitAnswer(ctx context.Context, userID uuid.UUID, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	logger := middleware.GetLogger(ctx)

	if !model.IsValidExerciseType(req.Type) {
		return nil, model.NewAppError("INVALID_TYPE", "出題形式の指定が正しくありません。", "type", model.ErrInvalidInput)
	}
	level := model.NormalizeLevel(req.Level)
	if !model.IsValidLevel(level) {
		return nil, model.NewAppError("INVALID_LEVEL", "レベルの指定が正しくありません。", "level", model.ErrInvalidInput)
	}
	if req.CurrentIndex >= len(req.DeckWordIDs) {
		return nil, model.NewAppError("INVALID_INDEX", "カーソル位置がデッキの範囲外です。", "current_index", model.ErrInvalidInput)
	}

	judgment, err := s.judge(ctx, req)
	if err != nil {
		return nil, err
	}

	// favorites は進捗もセッションも書かない。カーソルを進めるだけ
	if level == model.PseudoLevelFavorites {
		return s.advanceFavorites(req, judgment), nil
	}

	nextIndex := req.CurrentIndex + 1
	resp := &model.SubmitAnswerResponse{
		Correct:    judgment,
		ReviewMode: req.ReviewMode,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress := &model.StudyProgress{
			UserID:       userID,
			Type:         req.Type,
			Level:        level,
			WordID:       req.WordID,
			Completed:    judgment,
			CurrentIndex: study.NextCursorHint(req.CurrentIndex, len(req.DeckWordIDs)),
		}
		if err := s.progRepo.Upsert(ctx, tx, progress); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の保存に失敗しました。", "", err)
		}

		if nextIndex < len(req.DeckWordIDs) {
			resp.State = model.StudyStateActive
			resp.NextIndex = nextIndex
			// 復習モード中はリロードに備えてカーソルも保存する
			if req.ReviewMode {
				session := &model.ReviewSession{
					UserID:       userID,
					Type:         req.Type,
					Level:        level,
					WordIDs:      req.DeckWordIDs,
					CurrentIndex: nextIndex,
				}
				if err := s.sessionRepo.Upsert(ctx, tx, session); err != nil {
					return model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの保存に失敗しました。", "", err)
				}
			}
			return nil
		}

		// サイクル完了。未習得を計算する
		records, err := s.progRepo.FindByContext(ctx, tx, userID, req.Type, level)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の取得に失敗しました。", "", err)
		}
		completed := make(map[uint]bool, len(records))
		for _, r := range records {
			completed[r.WordID] = r.Completed
		}
		unlearned := study.Unlearned(req.DeckWordIDs, completed, req.WordID, judgment)

		resp.State = model.StudyStateCycleComplete
		resp.NextIndex = 0

		if len(unlearned) > 0 {
			// 決定ポイント。復習モードに入るかどうかは ResolveCycle で確定する
			resp.UnlearnedWordIDs = unlearned
			return nil
		}

		// 全問習得済み。その場でフルリセット
		newDeck, err := s.resetCycle(ctx, tx, userID, req.Type, level)
		if err != nil {
			return err
		}
		resp.ReviewMode = false
		resp.NewDeck = newDeck
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Debug("Answer processed",
		"type", req.Type,
		"level", level,
		"word_id", req.WordID,
		"correct", judgment,
		"state", resp.State,
	)
	return resp, nil
}

// ResolveCycle はサイクル完了の決定ポイントを解決します。
// accept なら未習得単語のシャッフルを新しい復習デッキとして永続化し、
// decline ならフルリセットして新しいベースデッキを返します。
func (s *studyService) ResolveCycle(ctx context.Context, userID uuid.UUID, req *model.ResolveCycleRequest) (*model.DeckResponse, error) {
	logger := middleware.GetLogger(ctx)

	if !model.IsValidExerciseType(req.Type) {
		return nil, model.NewAppError("INVALID_TYPE", "出題形式の指定が正しくありません。", "type", model.ErrInvalidInput)
	}
	level := model.NormalizeLevel(req.Level)
	if !model.IsValidLevel(level) || level == model.PseudoLevelFavorites {
		return nil, model.NewAppError("INVALID_LEVEL", "レベルの指定が正しくありません。", "level", model.ErrInvalidInput)
	}

	var deck *model.DeckResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if *req.Accept {
			records, err := s.progRepo.FindByContext(ctx, tx, userID, req.Type, level)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の取得に失敗しました。", "", err)
			}
			completed := make(map[uint]bool, len(records))
			for _, r := range records {
				completed[r.WordID] = r.Completed
			}

			unlearned := make([]uint, 0)
			for _, id := range req.DeckWordIDs {
				if !completed[id] {
					unlearned = append(unlearned, id)
				}
			}

			if len(unlearned) > 0 {
				reviewOrder := study.Shuffle(unlearned)
				session := &model.ReviewSession{
					UserID:       userID,
					Type:         req.Type,
					Level:        level,
					WordIDs:      reviewOrder,
					CurrentIndex: 0,
				}
				if err := s.sessionRepo.Upsert(ctx, tx, session); err != nil {
					return model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの保存に失敗しました。", "", err)
				}

				words, err := s.wordRepo.FindByLevel(ctx, tx, level)
				if err != nil {
					return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
				}
				deck = &model.DeckResponse{
					Words:        wordsInOrder(reviewOrder, wordsByID(words)),
					CurrentIndex: 0,
					ReviewMode:   true,
					TotalCount:   len(words),
				}
				logger.Info("Entered review mode",
					"type", req.Type,
					"level", level,
					"unlearned_count", len(unlearned),
				)
				return nil
			}
			// 未習得が無ければ decline と同じ扱いでリセットに落ちる
		}

		newDeck, err := s.resetCycle(ctx, tx, userID, req.Type, level)
		if err != nil {
			return err
		}
		deck = newDeck
		return nil
	})

	if err != nil {
		return nil, err
	}
	return deck, nil
}

// judge は出題形式ごとの正誤判定を行います。
// fill はサーバー側で正規化比較、それ以外はクライアントの自己申告を採用します。
func (s *studyService) judge(ctx context.Context, req *model.SubmitAnswerRequest) (bool, error) {
	if req.Type == model.ExerciseFillInTheBlank {
		if req.Input == nil {
			return false, model.NewAppError("MISSING_INPUT", "解答の入力が必要です。", "input", model.ErrInvalidInput)
		}
		word, err := s.wordRepo.FindByID(ctx, s.db, req.WordID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return false, model.NewAppError("WORD_NOT_FOUND", "単語が見つかりません。", "word_id", model.ErrNotFound)
			}
			return false, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
		}
		return study.JudgeFillAnswer(*req.Input, word.AnswerInExample), nil
	}

	if req.Result == nil {
		return false, model.NewAppError("MISSING_RESULT", "正誤の申告が必要です。", "result", model.ErrInvalidInput)
	}
	return *req.Result, nil
}

// advanceFavorites はお気に入りデッキの解答処理。永続化は一切行いません
func (s *studyService) advanceFavorites(req *model.SubmitAnswerRequest, judgment bool) *model.SubmitAnswerResponse {
	nextIndex := req.CurrentIndex + 1
	if nextIndex < len(req.DeckWordIDs) {
		return &model.SubmitAnswerResponse{
			State:     model.StudyStateActive,
			Correct:   judgment,
			NextIndex: nextIndex,
		}
	}
	return &model.SubmitAnswerResponse{
		State:   model.StudyStateCycleComplete,
		Correct: judgment,
	}
}

// resetCycle はフルサイクルのリセットを行います。
// 進捗の一括削除、アクティブセッションの削除、新しいベースデッキの生成と
// 永続化をひとつのトランザクション内で実行します。
func (s *studyService) resetCycle(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseType, level string) (*model.DeckResponse, error) {
	logger := middleware.GetLogger(ctx)

	if err := s.progRepo.DeleteByContext(ctx, tx, userID, exerciseType, level); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗のリセットに失敗しました。", "", err)
	}
	if err := s.sessionRepo.Delete(ctx, tx, userID, exerciseType, level); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの削除に失敗しました。", "", err)
	}

	words, err := s.wordRepo.FindByLevel(ctx, tx, level)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}

	order := study.Shuffle(wordIDsOf(words))
	session := &model.ReviewSession{
		UserID:       userID,
		Type:         model.BaseSessionType(exerciseType),
		Level:        level,
		WordIDs:      order,
		CurrentIndex: 0,
	}
	if err := s.sessionRepo.Upsert(ctx, tx, session); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの保存に失敗しました。", "", err)
	}

	logger.Info("Study cycle reset", "type", exerciseType, "level", level, "deck_size", len(order))
	return &model.DeckResponse{
		Words:        wordsInOrder(order, wordsByID(words)),
		CurrentIndex: 0,
		ReviewMode:   false,
		TotalCount:   len(words),
	}, nil
}
