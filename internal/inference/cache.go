package inference

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/spacesedan/thaisenti/internal/models"
)

// CachedAnalyzer memoizes predictions by exact input text.
type CachedAnalyzer struct {
	next  Analyzer
	cache *lru.Cache[string, models.Prediction]
}

func NewCachedAnalyzer(next Analyzer, size int) (*CachedAnalyzer, error) {
	cache, err := lru.New[string, models.Prediction](size)
	if err != nil {
		return nil, fmt.Errorf("prediction cache: %w", err)
	}
	return &CachedAnalyzer{next: next, cache: cache}, nil
}

func (c *CachedAnalyzer) Name() string {
	return c.next.Name()
}

func (c *CachedAnalyzer) Analyze(ctx context.Context, texts []string) ([]models.Prediction, error) {
	predictions := make([]models.Prediction, len(texts))

	var missing []string
	var missingIdx []int
	seen := make(map[string]bool)
	for i, text := range texts {
		if p, ok := c.cache.Get(text); ok {
			predictions[i] = p
			continue
		}
		missingIdx = append(missingIdx, i)
		if !seen[text] {
			seen[text] = true
			missing = append(missing, text)
		}
	}

	if len(missing) == 0 {
		return predictions, nil
	}

	fresh, err := c.next.Analyze(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missing) {
		return nil, fmt.Errorf("%s: expected %d predictions, got %d", c.next.Name(), len(missing), len(fresh))
	}

	byText := make(map[string]models.Prediction, len(missing))
	for i, text := range missing {
		byText[text] = fresh[i]
		c.cache.Add(text, fresh[i])
	}
	for _, i := range missingIdx {
		predictions[i] = byText[texts[i]]
	}
	return predictions, nil
}

func (c *CachedAnalyzer) Healthy(ctx context.Context) bool {
	return c.next.Healthy(ctx)
}

func (c *CachedAnalyzer) Len() int {
	return c.cache.Len()
}

func (c *CachedAnalyzer) Close() error {
	return Close(c.next)
}
