package service

import (
	"context"
	"fmt"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerationService drives the pipeline from submitted text to committed
// questions.
type GenerationService interface {
	// Generate runs the full pipeline for one submitted text. The returned
	// report lists committed questions and per-candidate failures; a non-nil
	// error means the call failed before any candidate could be written.
	Generate(ctx context.Context, userID, topic, text string) (*domain.GenerationReport, error)

	// GenerateBatch runs the pipeline over several texts for one user. Items
	// fail independently: the returned slice is parallel to texts and each
	// entry carries either a report or an error.
	GenerateBatch(ctx context.Context, userID, topic string, texts []string) []BatchItem
}

// generationService translates into the working language, runs the four model
// stages, validates their combined output, then persists each candidate in
// its own transaction so one bad candidate cannot take down its siblings.
type generationService struct {
	translator    domain.Translator
	summarizer    domain.Summarizer
	keywords      domain.KeywordExtractor
	distractors   domain.DistractorGenerator
	questions     domain.QuestionGenerator
	persister     *PersistenceCoordinator
	status        domain.GenerationStatusStore
	userLang      string
	workingLang   string
	maxConcurrent int
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(
	translator domain.Translator,
	summarizer domain.Summarizer,
	keywords domain.KeywordExtractor,
	distractors domain.DistractorGenerator,
	questions domain.QuestionGenerator,
	persister *PersistenceCoordinator,
	status domain.GenerationStatusStore,
	translatorCfg config.TranslatorConfig,
	generationCfg config.GenerationConfig,
) GenerationService {
	maxConcurrent := generationCfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &generationService{
		translator:    translator,
		summarizer:    summarizer,
		keywords:      keywords,
		distractors:   distractors,
		questions:     questions,
		persister:     persister,
		status:        status,
		userLang:      translatorCfg.UserLang,
		workingLang:   translatorCfg.WorkingLang,
		maxConcurrent: maxConcurrent,
	}
}

func (s *generationService) Generate(ctx context.Context, userID, topic, text string) (*domain.GenerationReport, error) {
	return s.generateOne(ctx, userID, topic, text)
}

func (s *generationService) GenerateBatch(ctx context.Context, userID, topic string, texts []string) []BatchItem {
	items := make([]BatchItem, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, text := range texts {
		g.Go(func() error {
			report, err := s.generateOne(gctx, userID, topic, text)
			items[i] = BatchItem{Report: report, Err: err}
			return nil
		})
	}
	// Item errors are collected in place, never returned to the group, so
	// Wait cannot fail and no item cancels the others.
	_ = g.Wait()

	return items
}

// BatchItem is the outcome of one text in a batch call.
type BatchItem struct {
	Report *domain.GenerationReport
	Err    error
}

func (s *generationService) generateOne(ctx context.Context, userID, topic, text string) (*domain.GenerationReport, error) {
	log := logger.Get()

	workingText, err := s.translator.Translate(ctx, text, s.userLang, s.workingLang)
	if err != nil {
		return nil, domain.NewTranslationError(err)
	}
	workingTopic, err := s.translator.Translate(ctx, topic, s.userLang, s.workingLang)
	if err != nil {
		return nil, domain.NewTranslationError(err)
	}

	output, err := s.runStages(ctx, userID, workingTopic, workingText)
	if err != nil {
		return nil, err
	}
	if err := output.Validate(); err != nil {
		return nil, err
	}

	report := &domain.GenerationReport{}
	for i, tuple := range output.Tuples() {
		generated, err := s.persister.PersistTuple(ctx, userID, output.Topic, output.Context, tuple)
		if err != nil {
			log.Warn("failed to persist question candidate",
				zap.String("userID", userID),
				zap.Int("index", i),
				zap.Error(err))
			report.Failures = append(report.Failures, domain.TupleFailure{Index: i, Err: err})
			continue
		}
		report.Questions = append(report.Questions, *generated)
	}
	return report, nil
}

// runStages chains the four model stages over working-language text. The
// advisory status flag brackets the stages only: translation happens before
// it is raised, persistence after it is cleared.
func (s *generationService) runStages(ctx context.Context, userID, topic, workingText string) (*domain.GenerationOutput, error) {
	s.markGenerating(ctx, userID, true)
	defer s.markGenerating(ctx, userID, false)

	summary, sentences, err := s.summarizer.Summarize(ctx, workingText)
	if err != nil {
		return nil, domain.NewGenerationStageError("summarize", err)
	}

	keywords, err := s.keywords.Extract(ctx, sentences, summary)
	if err != nil {
		return nil, domain.NewGenerationStageError("keyword extraction", err)
	}
	if len(keywords) == 0 {
		return nil, domain.NewGenerationStageError("keyword extraction",
			fmt.Errorf("no keywords extracted from text"))
	}

	correctAnswers, choices, err := s.distractors.Generate(ctx, keywords)
	if err != nil {
		return nil, domain.NewGenerationStageError("distractor generation", err)
	}

	stems, err := s.questions.Generate(ctx, summary, correctAnswers)
	if err != nil {
		return nil, domain.NewGenerationStageError("question generation", err)
	}

	return &domain.GenerationOutput{
		Topic:          topic,
		Context:        workingText,
		Stems:          stems,
		CorrectAnswers: correctAnswers,
		Choices:        choices,
	}, nil
}

// markGenerating flips the advisory per-user flag. The flag is best effort
// and never gates a call, so store failures are only logged.
func (s *generationService) markGenerating(ctx context.Context, userID string, inProgress bool) {
	if err := s.status.SetGenerating(ctx, userID, inProgress); err != nil {
		logger.Get().Warn("failed to update generation status",
			zap.String("userID", userID),
			zap.Bool("inProgress", inProgress),
			zap.Error(err))
	}
}
