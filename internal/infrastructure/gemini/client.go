package gemini

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
	"google.golang.org/api/option"
)

const systemInstruction = `You are a coach for a retail business simulation game.
You receive one store location (area, rent, catalog) and the metrics the player computed for it.
Comment briefly on capacity use, pricing against break-even, and marketing returns.
Only use the numbers you were given. Never invent products or figures.
Answer in at most 8 short bullet points.`

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient Gemini backed advisor
func NewGeminiClient(ctx context.Context, apiKey string) (repository.AIRepository, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash-exp")
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &geminiClient{
		client: client,
		model:  model,
	}, nil
}

// Advise comments on the location and its calculations
func (g *geminiClient) Advise(ctx context.Context, location entity.Location, history []entity.Calculation) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(location, history)))
	if err != nil {
		return "", fmt.Errorf("failed to generate advice: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	return extractText(resp), nil
}

// BuildPrompt renders the location record and calculation history as plain text
func BuildPrompt(location entity.Location, history []entity.Calculation) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Location: %s\n", location.Name))
	sb.WriteString(fmt.Sprintf("Store area: %.2f m2, rental cost: $%.2f/day, overflow fee: $%.2f\n",
		location.Area, location.RentalCost, location.OverflowFee))

	names := make([]string, 0, len(location.Products))
	for name := range location.Products {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		sb.WriteString("\nCatalog:\n")
		for _, name := range names {
			p := location.Products[name]
			sb.WriteString(fmt.Sprintf("- %s: cost $%.2f, sell $%.2f, %.4f m2/unit, expires in %d days\n",
				name, p.Cost, p.Price, p.Dimension, p.ShelfLifeDays))
		}
	}

	if len(history) > 0 {
		sb.WriteString("\nCalculations (oldest first):\n")
		for _, calc := range history {
			if !calc.Defined {
				sb.WriteString(fmt.Sprintf("- [%s] %s (not computable)\n", calc.Kind, calc.Summary))
				continue
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", calc.Kind, calc.Summary))
		}
	}

	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				result.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return result.String()
}

// Close closes the underlying client
func (g *geminiClient) Close() error {
	return g.client.Close()
}
