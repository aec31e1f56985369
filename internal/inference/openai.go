package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/spacesedan/thaisenti/internal/clients"
	"github.com/spacesedan/thaisenti/internal/models"
)

const openAIPrompt = `You classify the sentiment of Thai text.
Answer with JSON only, no markdown, in exactly this shape:
{"label": "pos" | "neg" | "neu", "score": <confidence between 0 and 1>}
Use "neu" for questions, facts and text without a clear opinion.`

// OpenAIAnalyzer asks a chat model for a label, one request per text.
type OpenAIAnalyzer struct {
	client *clients.OpenAIClient
}

func NewOpenAIAnalyzer(client *clients.OpenAIClient) *OpenAIAnalyzer {
	return &OpenAIAnalyzer{client: client}
}

func (a *OpenAIAnalyzer) Name() string {
	return "openai:" + a.client.Model
}

func (a *OpenAIAnalyzer) Analyze(ctx context.Context, texts []string) ([]models.Prediction, error) {
	predictions := make([]models.Prediction, 0, len(texts))
	for _, text := range texts {
		completion, err := a.client.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(openAIPrompt),
				openai.UserMessage(text),
			}),
			Model:       openai.F(openai.ChatModel(a.client.Model)),
			Temperature: openai.Float(0),
		})
		if err != nil {
			return nil, fmt.Errorf("openai completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return nil, fmt.Errorf("openai completion: empty response")
		}

		prediction, err := parseLLMAnswer(completion.Choices[0].Message.Content)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}
	return predictions, nil
}

func (a *OpenAIAnalyzer) Healthy(context.Context) bool {
	return a.client != nil && a.client.Client != nil
}

func parseLLMAnswer(content string) (models.Prediction, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var answer models.Prediction
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &answer); err != nil {
		return models.Prediction{}, fmt.Errorf("openai completion: unparseable answer %q: %w", content, err)
	}
	if answer.Label == "" {
		return models.Prediction{}, fmt.Errorf("openai completion: answer has no label")
	}
	if answer.Score <= 0 || answer.Score > 1 {
		answer.Score = 1
	}
	return answer, nil
}
