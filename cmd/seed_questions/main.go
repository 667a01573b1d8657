package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/database"
	"quizdeck/internal/domain"
	"quizdeck/internal/logger"
	"quizdeck/internal/repository"
	"quizdeck/internal/util"

	"go.uber.org/zap"
)

// seedQuestion mirrors one entry of the seed file.
type seedQuestion struct {
	Text         string `json:"text"`
	ChoiceA      string `json:"choice_a"`
	ChoiceB      string `json:"choice_b"`
	ChoiceC      string `json:"choice_c"`
	ChoiceD      string `json:"choice_d"`
	CorrectLabel string `json:"correct_label"`
	Difficulty   string `json:"difficulty"`
}

func main() {
	file := flag.String("file", "database/seed/questions.json", "path to the seed questions JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}
	defer logger.Sync()
	l := logger.Get()

	l.Info("Question seeding starting up...", zap.String("file", *file))

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to postgres database", zap.Error(err))
	}
	defer db.Close()

	questionRepo := repository.NewSQLXQuestionRepository(db)

	data, err := os.ReadFile(*file)
	if err != nil {
		l.Fatal("Failed to read seed file", zap.Error(err))
	}

	var seeds []seedQuestion
	if err := json.Unmarshal(data, &seeds); err != nil {
		l.Fatal("Failed to parse seed file", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created, skipped := 0, 0
	for i, s := range seeds {
		label, ok := domain.ParseChoiceLabel(s.CorrectLabel)
		if !ok {
			l.Warn("Skipping seed entry with invalid correct label", zap.Int("index", i), zap.String("label", s.CorrectLabel))
			skipped++
			continue
		}
		difficulty, ok := domain.ParseDifficulty(s.Difficulty)
		if !ok || difficulty == domain.DifficultyAll {
			l.Warn("Skipping seed entry with invalid difficulty", zap.Int("index", i), zap.String("difficulty", s.Difficulty))
			skipped++
			continue
		}

		question := domain.NewQuestion(s.Text, s.ChoiceA, s.ChoiceB, s.ChoiceC, s.ChoiceD, label, difficulty)
		if errs := question.Validate(); len(errs) > 0 {
			l.Warn("Skipping invalid seed entry", zap.Int("index", i), zap.Error(errs))
			skipped++
			continue
		}
		question.ID = util.NewULID()

		if err := questionRepo.SaveQuestion(ctx, question); err != nil {
			l.Fatal("Failed to save seed question", zap.Int("index", i), zap.Error(err))
		}
		created++
	}

	l.Info("Question seeding finished", zap.Int("created", created), zap.Int("skipped", skipped))
}
