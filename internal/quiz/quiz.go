package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

var (
	ErrUnknownQuestion = errors.New("unknown quiz question")
	ErrInvalidGuess    = errors.New("guess must be positive, negative or neutral")
)

// MAX_SCOREBOARDS bounds how many sessions keep a score at once.
const MAX_SCOREBOARDS = 4096

// Predictor runs the model on one text without recording it.
type Predictor interface {
	Predict(ctx context.Context, text string) (models.Prediction, error)
}

type Quiz struct {
	bank      []models.QuizQuestion
	byID      map[string]models.QuizQuestion
	predictor Predictor
	mu        sync.Mutex
	scores    *lru.Cache[string, models.QuizScore]
	pick      func(n int) int
}

func New(predictor Predictor) (*Quiz, error) {
	return NewWithBank(predictor, defaultBank)
}

func NewWithBank(predictor Predictor, bank []models.QuizQuestion) (*Quiz, error) {
	if len(bank) == 0 {
		return nil, errors.New("quiz bank is empty")
	}

	scores, err := lru.New[string, models.QuizScore](MAX_SCOREBOARDS)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoreboard: %w", err)
	}

	byID := make(map[string]models.QuizQuestion, len(bank))
	for _, question := range bank {
		if _, dup := byID[question.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz question id %q", question.ID)
		}
		byID[question.ID] = question
	}

	return &Quiz{
		bank:      bank,
		byID:      byID,
		predictor: predictor,
		scores:    scores,
		pick:      rand.IntN,
	}, nil
}

func (q *Quiz) Question(id string) (models.QuizQuestion, error) {
	question, ok := q.byID[id]
	if !ok {
		return models.QuizQuestion{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	return question, nil
}

func (q *Quiz) Random() models.QuizQuestion {
	return q.bank[q.pick(len(q.bank))]
}

func (q *Quiz) Len() int {
	return len(q.bank)
}

// Grade checks guess against the expected label of question id, asks the model for
// its own opinion and records the outcome on the session scoreboard.
func (q *Quiz) Grade(ctx context.Context, session string, id string, guess models.Sentiment) (models.QuizResult, error) {
	question, err := q.Question(id)
	if err != nil {
		return models.QuizResult{}, err
	}
	parsed, ok := sentiment.Parse(string(guess))
	if !ok {
		return models.QuizResult{}, fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}
	guess = parsed

	prediction, err := q.predictor.Predict(ctx, question.Text)
	if err != nil {
		return models.QuizResult{}, fmt.Errorf("failed to grade %s: %w", id, err)
	}

	model := sentiment.Normalize(prediction.Label)
	result := models.QuizResult{
		Question:    question,
		Guess:       guess,
		Expected:    question.Expected,
		Model:       model,
		ModelScore:  sentiment.ClampScore(prediction.Score),
		Correct:     guess == question.Expected,
		ModelAgreed: model == question.Expected,
	}
	result.Score = q.record(session, result.Correct)

	slog.Debug("[Quiz] Graded answer",
		slog.String("session_id", session),
		slog.String("question", id),
		slog.Bool("correct", result.Correct),
		slog.Bool("model_agreed", result.ModelAgreed))

	return result, nil
}

func (q *Quiz) Score(session string) models.QuizScore {
	score, _ := q.scores.Get(session)
	return score
}

func (q *Quiz) Reset(session string) {
	q.scores.Remove(session)
}

func (q *Quiz) record(session string, correct bool) models.QuizScore {
	q.mu.Lock()
	defer q.mu.Unlock()

	score, _ := q.scores.Get(session)
	score.Answered++
	if correct {
		score.Correct++
	}
	q.scores.Add(session, score)
	return score
}
