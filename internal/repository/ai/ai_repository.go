package ai

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

type AIConfig struct {
	APIKey     string
	ChatModel  string
	ImageModel string
}

// AIRepository wraps the text and image generation provider. One instance is
// constructed at process start and shared across requests.
type AIRepository struct {
	aiConfig AIConfig
	client   openai.Client
}

func NewAIRepository(cfg AIConfig) *AIRepository {
	return &AIRepository{
		aiConfig: cfg,
		client:   openai.NewClient(option.WithAPIKey(cfg.APIKey)),
	}
}

func (r *AIRepository) Configured() bool {
	return r.aiConfig.APIKey != ""
}

// ChatJSON sends one system+user exchange requiring a JSON-object response
// and returns the raw content of the first choice.
func (r *AIRepository) ChatJSON(ctx context.Context, system, user string, temperature float64) (string, error) {
	if !r.Configured() {
		return "", fmt.Errorf("openai api key not configured")
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(r.aiConfig.ChatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

func (r *AIRepository) Chat(ctx context.Context, system, user string, temperature float64) (string, error) {
	if !r.Configured() {
		return "", fmt.Errorf("openai api key not configured")
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(r.aiConfig.ChatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateImage asks the image model for a single 1024x1024 image and returns
// its hosted URL.
func (r *AIRepository) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !r.Configured() {
		return "", fmt.Errorf("openai api key not configured")
	}

	resp, err := r.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(r.aiConfig.ImageModel),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1024x1024,
		Quality:        openai.ImageGenerateParamsQualityStandard,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("no image url returned")
	}

	return resp.Data[0].URL, nil
}
