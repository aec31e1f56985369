package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/thaisenti/internal/models"
)

type fixedPredictor struct {
	prediction models.Prediction
	err        error
	texts      []string
}

func (f *fixedPredictor) Predict(_ context.Context, text string) (models.Prediction, error) {
	f.texts = append(f.texts, text)
	return f.prediction, f.err
}

func TestDefaultBankCoversEveryLabel(t *testing.T) {
	q, err := New(&fixedPredictor{})
	require.NoError(t, err)

	seen := map[models.Sentiment]int{}
	for _, question := range defaultBank {
		seen[question.Expected]++
		assert.NotEmpty(t, question.Text)
	}
	for _, label := range models.Sentiments {
		assert.Positive(t, seen[label], "no questions for %s", label)
	}
	assert.Equal(t, len(defaultBank), q.Len())
}

func TestNewWithBankRejectsDuplicates(t *testing.T) {
	_, err := NewWithBank(&fixedPredictor{}, []models.QuizQuestion{{ID: "a"}, {ID: "a"}})
	assert.Error(t, err)

	_, err = NewWithBank(&fixedPredictor{}, nil)
	assert.Error(t, err)
}

func TestQuestionAndRandom(t *testing.T) {
	q, err := New(&fixedPredictor{})
	require.NoError(t, err)

	question, err := q.Question("q03")
	require.NoError(t, err)
	assert.Equal(t, models.Neutral, question.Expected)

	_, err = q.Question("nope")
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	q.pick = func(n int) int { return n - 1 }
	assert.Equal(t, defaultBank[len(defaultBank)-1].ID, q.Random().ID)
}

func TestGrade(t *testing.T) {
	predictor := &fixedPredictor{prediction: models.Prediction{Label: "neg", Score: 0.93}}
	q, err := New(predictor)
	require.NoError(t, err)

	result, err := q.Grade(context.Background(), "s1", "q02", models.Negative)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.True(t, result.ModelAgreed)
	assert.Equal(t, models.Negative, result.Model)
	assert.Equal(t, 0.93, result.ModelScore)
	assert.Equal(t, models.QuizScore{Answered: 1, Correct: 1}, result.Score)
	assert.Equal(t, []string{defaultBank[1].Text}, predictor.texts)

	result, err = q.Grade(context.Background(), "s1", "q01", models.Neutral)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.False(t, result.ModelAgreed)
	assert.Equal(t, models.QuizScore{Answered: 2, Correct: 1}, q.Score("s1"))
	assert.Equal(t, 50.0, q.Score("s1").Percent())

	assert.Equal(t, models.QuizScore{}, q.Score("other"))

	q.Reset("s1")
	assert.Equal(t, models.QuizScore{}, q.Score("s1"))
}

func TestGradeAcceptsShortLabels(t *testing.T) {
	q, err := New(&fixedPredictor{prediction: models.Prediction{Label: "pos", Score: 0.8}})
	require.NoError(t, err)

	result, err := q.Grade(context.Background(), "s1", "q01", models.Sentiment(" POS "))
	require.NoError(t, err)
	assert.Equal(t, models.Positive, result.Guess)
	assert.True(t, result.Correct)
	assert.Equal(t, models.QuizScore{Answered: 1, Correct: 1}, q.Score("s1"))
}

func TestGradeErrors(t *testing.T) {
	predictor := &fixedPredictor{err: errors.New("backend down")}
	q, err := New(predictor)
	require.NoError(t, err)

	_, err = q.Grade(context.Background(), "s1", "missing", models.Positive)
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	_, err = q.Grade(context.Background(), "s1", "q01", models.Sentiment("happy"))
	assert.ErrorIs(t, err, ErrInvalidGuess)

	_, err = q.Grade(context.Background(), "s1", "q01", models.Positive)
	require.Error(t, err)
	assert.Equal(t, models.QuizScore{}, q.Score("s1"), "failed grading is not scored")
}

func TestLessons(t *testing.T) {
	q, err := New(&fixedPredictor{})
	require.NoError(t, err)

	lessons := q.Lessons()
	require.Len(t, lessons, 3)
	assert.Equal(t, models.Positive, lessons[0].Sentiment)
	assert.Equal(t, "😊", lessons[0].Emoji)
	assert.Contains(t, lessons[0].Examples, "หนังเรื่องนี้สนุกจนลืมเวลาเลย")
	for _, lesson := range lessons {
		assert.NotEmpty(t, lesson.Cues)
		assert.NotEmpty(t, lesson.Examples)
		assert.NotEmpty(t, lesson.Explanation)
	}
}
