// 単語カタログをExcel/CSVから投入するCLI。
//
//	DATABASE_URL=... go run ./cmd/seed -file data/words_n5.xlsx -sheet Sheet1
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"nori/internal/model"
	"nori/internal/repository"
	"nori/internal/seed"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var (
		filePath  = flag.String("file", "", "path to the Excel or CSV file (required)")
		sheetName = flag.String("sheet", "Sheet1", "sheet name (Excel only)")
		startRow  = flag.Int("start-row", 2, "1-based row to start importing from")
	)
	flag.Parse()

	if *filePath == "" {
		slog.Error("-file is required")
		os.Exit(1)
	}

	// .env があれば読む。無くてもエラーにしない
	if err := godotenv.Load(); err == nil {
		slog.Info(".env loaded")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	db, err := repository.NewDB(databaseURL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := migrate(db); err != nil {
		slog.Error("Error migrating schema", slog.Any("error", err))
		os.Exit(1)
	}

	importer := seed.NewImporter(db, repository.NewGormWordRepository())
	cfg := seed.DefaultImportConfig(*filePath)
	cfg.SheetName = *sheetName
	cfg.StartRow = *startRow

	result, err := importer.ImportWords(context.Background(), cfg)
	if err != nil {
		slog.Error("Import failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Import finished",
		slog.Int("processed", result.TotalProcessed),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("errors", len(result.Errors)),
	)
	for _, e := range result.Errors {
		slog.Warn("Import row error", slog.String("detail", e))
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Word{},
		&model.WordMeaning{},
	)
}
