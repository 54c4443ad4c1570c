package service

import (
	"context"

	"quizforge/internal/domain"
)

// PersistenceCoordinator turns one generation tuple into committed rows. The
// tuple arrives in the model's working language; every user-visible field is
// translated back to the user's language before it is written, so duplicate
// detection compares stored text against stored text.
type PersistenceCoordinator struct {
	translator   domain.Translator
	questionRepo domain.QuestionRepository
	txManager    domain.TransactionManager
	detector     domain.DuplicateDetector
	userLang     string
	workingLang  string
}

// NewPersistenceCoordinator creates a new PersistenceCoordinator.
func NewPersistenceCoordinator(
	translator domain.Translator,
	questionRepo domain.QuestionRepository,
	txManager domain.TransactionManager,
	detector domain.DuplicateDetector,
	userLang, workingLang string,
) *PersistenceCoordinator {
	return &PersistenceCoordinator{
		translator:   translator,
		questionRepo: questionRepo,
		txManager:    txManager,
		detector:     detector,
		userLang:     userLang,
		workingLang:  workingLang,
	}
}

// PersistTuple saves one question and its four choices in a single
// transaction and, after the commit, runs duplicate detection against the
// user's corpus. topic and sourceContext arrive in the working language along
// with the tuple; every field is translated back here, per tuple, so the
// stored text is what detection compares against. A translation failure drops
// the whole tuple before any write.
func (p *PersistenceCoordinator) PersistTuple(ctx context.Context, userID, topic, sourceContext string, tuple domain.GenerationTuple) (*domain.GeneratedQuestion, error) {
	stem, err := p.translator.Translate(ctx, tuple.Stem, p.workingLang, p.userLang)
	if err != nil {
		return nil, domain.NewTranslationError(err)
	}
	userTopic, err := p.translator.Translate(ctx, topic, p.workingLang, p.userLang)
	if err != nil {
		return nil, domain.NewTranslationError(err)
	}
	userContext, err := p.translator.Translate(ctx, sourceContext, p.workingLang, p.userLang)
	if err != nil {
		return nil, domain.NewTranslationError(err)
	}

	// The first choice is the correct answer. Translating the list once and
	// reusing entry zero keeps the stored correct choice byte-identical to
	// its choice row.
	choices := make([]string, len(tuple.Choices))
	for i, text := range tuple.Choices {
		translated, err := p.translator.Translate(ctx, text, p.workingLang, p.userLang)
		if err != nil {
			return nil, domain.NewTranslationError(err)
		}
		choices[i] = translated
	}
	correctChoice := choices[0]

	question := domain.NewQuestion(userID, userTopic, userContext, stem, correctChoice, []string{correctChoice})
	if err := question.Validate(); err != nil {
		return nil, err
	}

	err = p.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := p.questionRepo.SaveQuestion(txCtx, question); err != nil {
			return domain.NewPersistenceError("failed to save question", err)
		}
		if err := p.questionRepo.SaveChoices(txCtx, question.ID, choices); err != nil {
			return domain.NewPersistenceError("failed to save choices", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The question is committed from here on. Detection can only enrich the
	// response, never undo the write.
	report := p.detector.Detect(ctx, userID, question.QuestionText, choices, question.ID)

	return &domain.GeneratedQuestion{
		Question:   question,
		Choices:    choices,
		Duplicates: report,
	}, nil
}
