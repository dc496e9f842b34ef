// Package gemini wraps the Google GenAI SDK for crystal identification and
// guidance. Responses come back as JSON wrapped in markdown fences more
// often than not, so everything funnels through the normalizers in this
// package before reaching a caller.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/crystal-grimoire/backend/internal/model"
)

const defaultModel = "gemini-2.0-flash"

// Analyzer issues identification and guidance calls against the Gemini API.
type Analyzer struct {
	client *genai.Client
	model  string
}

// New creates an Analyzer. An empty model selects the default.
func New(ctx context.Context, apiKey, modelName string) (*Analyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key required: %w", model.ErrInvalidArgument)
	}
	if modelName == "" {
		modelName = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Analyzer{client: client, model: modelName}, nil
}

// IdentifyImage submits a photo for identification. userContext is optional
// free text from the user ("found this at a market in Brazil").
func (a *Analyzer) IdentifyImage(ctx context.Context, imageData []byte, mimeType, userContext string) (model.Identification, error) {
	if len(imageData) == 0 {
		return model.Identification{}, fmt.Errorf("image data required: %w", model.ErrInvalidArgument)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	prompt := identifyPrompt
	if userContext != "" {
		prompt += "\n\nAdditional context from the user: " + userContext
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(imageData, mimeType),
		}, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return model.Identification{}, fmt.Errorf("gemini identification: %w", err)
	}
	return ParseIdentification(resp.Text())
}

// Guide asks for crystal guidance for a stated need, biased toward crystals
// the user already owns.
func (a *Analyzer) Guide(ctx context.Context, need string, ownedCrystals []string) (model.Guidance, error) {
	if strings.TrimSpace(need) == "" {
		return model.Guidance{}, fmt.Errorf("guidance query required: %w", model.ErrInvalidArgument)
	}

	prompt := fmt.Sprintf(guidancePrompt, need)
	if len(ownedCrystals) > 0 {
		prompt += "\n\nThe user's collection: " + strings.Join(ownedCrystals, ", ") +
			". Prefer crystals they already own when they fit."
	}
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return model.Guidance{}, fmt.Errorf("gemini guidance: %w", err)
	}
	return ParseGuidance(resp.Text())
}

func (a *Analyzer) Close() error {
	// *genai.Client holds no closable resources and exposes no Close method.
	return nil
}
