// Package seed は Excel/CSV ファイルから単語カタログを投入します
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nori/internal/model"
	"nori/internal/repository"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportConfig は取り込み対象ファイルとシート・列の対応を定義します。
// 列の並びは A:level B:kanji C:furigana D:example E:answer F:language G:meaning H:example_meaning
type ImportConfig struct {
	FilePath   string
	SheetName  string
	StartRow   int // 1始まり。デフォルトはヘッダーを飛ばして2行目から
}

func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:  path,
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

// ImportResult は取り込み結果の集計
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Errors         []string
}

// Importer は行データを単語カタログへupsertします
type Importer struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
}

func NewImporter(db *gorm.DB, wordRepo repository.WordRepository) *Importer {
	return &Importer{db: db, wordRepo: wordRepo}
}

// ImportWords は拡張子に応じてExcelまたはCSVとして取り込みます
func (im *Importer) ImportWords(ctx context.Context, cfg ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(cfg.FilePath))
	if ext == ".csv" {
		return im.importFromCSV(ctx, cfg)
	}
	return im.importFromExcel(ctx, cfg)
}

func (im *Importer) importFromExcel(ctx context.Context, cfg ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := im.processRow(ctx, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func (im *Importer) importFromCSV(ctx context.Context, cfg ImportConfig) (*ImportResult, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rowNum++
		if rowNum < cfg.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := im.processRow(ctx, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

// processRow は1行分を単語としてupsertします。
// 同じ (level, kanji) が存在する場合は上書き、無ければ新規作成
func (im *Importer) processRow(ctx context.Context, row []string, result *ImportResult) error {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	level := model.NormalizeLevel(get(0))
	kanji := get(1)
	furigana := get(2)
	example := get(3)
	answer := get(4)
	langCode := get(5)
	meaning := get(6)
	exampleMeaning := get(7)

	if !model.IsValidLevel(level) || level == model.PseudoLevelFavorites {
		return fmt.Errorf("invalid level %q", get(0))
	}
	if kanji == "" || furigana == "" {
		return fmt.Errorf("kanji and furigana are required")
	}
	if langCode == "" {
		langCode = "en"
	}

	return im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := im.wordRepo.CheckKanjiExists(ctx, tx, level, kanji, nil)
		if err != nil {
			return err
		}

		if exists {
			var existing model.Word
			if err := tx.Where("level = ? AND kanji = ?", level, kanji).First(&existing).Error; err != nil {
				return err
			}
			updates := map[string]interface{}{
				"furigana":          furigana,
				"example_sentence":  example,
				"answer_in_example": answer,
			}
			if err := im.wordRepo.Update(ctx, tx, existing.ID, updates); err != nil {
				return err
			}
			meanings := []model.WordMeaning{{
				LanguageCode:           langCode,
				WordMeaning:            meaning,
				ExampleSentenceMeaning: exampleMeaning,
			}}
			if err := im.wordRepo.ReplaceMeanings(ctx, tx, existing.ID, meanings); err != nil {
				return err
			}
			result.Updated++
			return nil
		}

		word := &model.Word{
			Level:           level,
			Kanji:           kanji,
			Furigana:        furigana,
			ExampleSentence: example,
			AnswerInExample: answer,
			Meanings: []model.WordMeaning{{
				LanguageCode:           langCode,
				WordMeaning:            meaning,
				ExampleSentenceMeaning: exampleMeaning,
			}},
		}
		if err := im.wordRepo.Create(ctx, tx, word); err != nil {
			return err
		}
		result.Created++
		return nil
	})
}
