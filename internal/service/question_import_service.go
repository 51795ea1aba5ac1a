package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/internal/models"
	"github.com/noah-isme/mentoria-api/pkg/jobs"
)

const importJobType = "question.import"

type questionWriter interface {
	Upsert(ctx context.Context, question *models.Question) error
}

type questionDetailsFile struct {
	Title                    *string  `json:"title"`
	Index                    int      `json:"index"`
	Year                     int      `json:"year"`
	Language                 *string  `json:"language"`
	Discipline               *string  `json:"discipline"`
	Context                  *string  `json:"context"`
	AlternativesIntroduction *string  `json:"alternativesIntroduction"`
	CorrectAlternative       *string  `json:"correctAlternative"`
	Files                    []string `json:"files"`
	Alternatives             []struct {
		Letter string  `json:"letter"`
		Text   *string `json:"text"`
		File   *string `json:"file"`
	} `json:"alternatives"`
}

// ImportConfig tunes the importer worker pool.
type ImportConfig struct {
	Workers    int
	MaxRetries int
}

// QuestionImportService loads question bank exports into the store.
type QuestionImportService struct {
	repo   questionWriter
	cache  *CacheService
	logger *zap.Logger
	config ImportConfig
}

// NewQuestionImportService constructs a QuestionImportService. cache may be nil.
func NewQuestionImportService(repo questionWriter, cache *CacheService, logger *zap.Logger, config ImportConfig) *QuestionImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &QuestionImportService{repo: repo, cache: cache, logger: logger, config: config}
}

// FindDetailFiles lists <root>/<year>/questions/*/details.json in lexical order.
func FindDetailFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("question root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("question root %s is not a directory", root)
	}
	return filepath.Glob(filepath.Join(root, "*", "questions", "*", "details.json"))
}

// ImportDir imports every details.json under root and invalidates cached question views.
func (s *QuestionImportService) ImportDir(ctx context.Context, root string) (*dto.ImportQuestionsSummary, error) {
	paths, err := FindDetailFiles(root)
	if err != nil {
		return nil, err
	}

	var processed, overflow atomic.Int64
	queue := jobs.NewQueue(importJobType, func(ctx context.Context, job jobs.Job) error {
		path := job.Payload.(string)
		q, extra, err := s.loadFile(path)
		if err != nil {
			s.logger.Warn("failed to read question file", zap.String("path", path), zap.Error(err))
			return err
		}
		if err := s.repo.Upsert(ctx, q); err != nil {
			return fmt.Errorf("upsert question %d/%d: %w", q.Year, q.Index, err)
		}
		processed.Add(1)
		if extra > 0 {
			overflow.Add(1)
			s.logger.Warn("question has more files than slots",
				zap.String("path", path), zap.Int("dropped", extra))
		}
		return nil
	}, jobs.QueueConfig{
		Workers:    s.config.Workers,
		MaxRetries: s.config.MaxRetries,
		Logger:     s.logger,
	})

	queue.Start(ctx)
	defer queue.Stop()

	for _, path := range paths {
		if err := queue.Enqueue(jobs.Job{ID: path, Type: importJobType, Payload: path}); err != nil {
			return nil, err
		}
	}
	queue.Wait()

	if err := s.cache.Invalidate(context.WithoutCancel(ctx), questionCachePrefix+"*"); err != nil {
		s.logger.Warn("question cache not invalidated after import", zap.Error(err))
	}

	summary := &dto.ImportQuestionsSummary{
		Processed: int(processed.Load()),
		Overflow:  int(overflow.Load()),
		Failed:    int(queue.Stats().Failed),
	}
	s.logger.Info("question import finished",
		zap.Int("processed", summary.Processed),
		zap.Int("overflow", summary.Overflow),
		zap.Int("failed", summary.Failed),
	)
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("question import interrupted: %w", err)
	}
	return summary, nil
}

func (s *QuestionImportService) loadFile(path string) (*models.Question, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	return ParseQuestionDetails(raw)
}

// ParseQuestionDetails converts one details.json payload into a question. Distinct file URLs fill
// the slots in first-seen order, question files before alternative files, and each slotted URL in
// the text is replaced by its placeholder. The second return value counts URLs that did not fit.
func ParseQuestionDetails(raw []byte) (*models.Question, int, error) {
	var file questionDetailsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, 0, fmt.Errorf("decode question details: %w", err)
	}

	var urls []string
	seen := make(map[string]bool)
	collect := func(url string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		urls = append(urls, url)
	}
	for _, url := range file.Files {
		collect(url)
	}
	for _, alt := range file.Alternatives {
		if alt.File != nil {
			collect(*alt.File)
		}
	}

	q := &models.Question{
		Year:       file.Year,
		Index:      file.Index,
		Language:   file.Language,
		Discipline: file.Discipline,
	}
	if file.Title != nil && strings.TrimSpace(*file.Title) != "" {
		q.Title = *file.Title
	} else {
		q.Title = fmt.Sprintf("Questão %d", file.Index)
	}

	slotted := make([][2]string, 0, len(models.FileSlots))
	for i, url := range urls {
		if i >= len(models.FileSlots) {
			break
		}
		u := url
		q.SetFile(i, &u)
		slotted = append(slotted, [2]string{url, Placeholder(models.FileSlots[i])})
	}
	overflow := 0
	if len(urls) > len(models.FileSlots) {
		overflow = len(urls) - len(models.FileSlots)
	}

	unrender := func(text *string) *string {
		if text == nil {
			return nil
		}
		out := *text
		for _, pair := range slotted {
			out = strings.ReplaceAll(out, pair[0], pair[1])
		}
		return &out
	}

	q.Context = unrender(file.Context)
	q.AlternativesIntro = unrender(file.AlternativesIntroduction)
	for _, alt := range file.Alternatives {
		q.SetAlternative(strings.ToUpper(strings.TrimSpace(alt.Letter)), unrender(alt.Text))
	}

	if file.CorrectAlternative != nil {
		if letter, err := NormalizeAlternative(*file.CorrectAlternative); err == nil {
			q.CorrectAlternative = &letter
		}
	}
	return q, overflow, nil
}
