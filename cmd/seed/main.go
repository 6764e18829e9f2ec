package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"campus-assistant-be/internal/config"
	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/repository/implementation"
	"campus-assistant-be/pkg/database"
	"campus-assistant-be/pkg/embedding"
	"campus-assistant-be/pkg/lexical"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seeds the FAQ table from a CSV export of the department's curated list.
// Expected columns: question, answer, category, keywords (semicolon-separated).
func main() {
	csvPath := flag.String("csv", "data/faqs.csv", "path to the FAQ CSV file")
	skipEmbed := flag.Bool("skip-embeddings", false, "store entries without vectors")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var provider embedding.Provider
	if !*skipEmbed {
		if cfg.Ai.EmbeddingProvider == "gemini" {
			provider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.GeminiModel, cfg.Ai.CallTimeout)
		} else {
			provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel, cfg.Ai.CallTimeout)
		}
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal("Error: Failed to open CSV:", err)
	}
	defer file.Close()

	ctx := context.Background()
	repo := implementation.NewFaqRepository(db)

	existing, err := repo.FindAllActive(ctx)
	if err != nil {
		log.Fatal("Error: Failed to load existing entries:", err)
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		log.Fatal("Error: Failed to read CSV header:", err)
	}
	if len(header) < 2 {
		log.Fatal("Error: CSV needs at least question and answer columns")
	}

	var created, skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			color.Red("✗ malformed row skipped: %v", err)
			skipped++
			continue
		}
		if len(record) < 2 || strings.TrimSpace(record[0]) == "" || strings.TrimSpace(record[1]) == "" {
			skipped++
			continue
		}

		faq := &entity.FaqEntry{
			Id:        uuid.New(),
			Question:  strings.TrimSpace(record[0]),
			Answer:    strings.TrimSpace(record[1]),
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		if len(record) > 2 {
			faq.Category = strings.TrimSpace(record[2])
		}
		if len(record) > 3 && record[3] != "" {
			faq.Keywords = strings.Split(record[3], ";")
		}

		if isDuplicate(faq.Question, existing) {
			color.Yellow("– duplicate skipped: %s", faq.Question)
			skipped++
			continue
		}

		if provider != nil {
			vector, err := provider.Embed(ctx, faq.EmbeddingText())
			if err != nil {
				color.Yellow("– embedding failed, stored without vector: %s", faq.Question)
			} else {
				faq.EmbeddingValue = vector
			}
		}

		if err := repo.Create(ctx, faq); err != nil {
			color.Red("✗ insert failed: %s (%v)", faq.Question, err)
			skipped++
			continue
		}

		existing = append(existing, faq)
		created++
		color.Green("✓ %s", faq.Question)
	}

	color.Cyan("Done: %d created, %d skipped", created, skipped)
}

func isDuplicate(question string, existing []*entity.FaqEntry) bool {
	for _, e := range existing {
		if lexical.Ratio(question, e.Question) >= 0.8 {
			return true
		}
	}
	return false
}
