package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dtroode/fyx-storefront/internal/model"
)

var _ model.Assistant = (*Gemini)(nil)

// generator is the part of the genai client the assistant uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini calls the Google generative language API.
// Empty responses come back as "" with a nil error.
type Gemini struct {
	models     generator
	textModel  string
	imageModel string
}

// NewGemini creates a client for the Gemini API.
func NewGemini(ctx context.Context, apiKey, textModel, imageModel string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return newGemini(client.Models, textModel, imageModel), nil
}

func newGemini(models generator, textModel, imageModel string) *Gemini {
	return &Gemini{models: models, textModel: textModel, imageModel: imageModel}
}

func (g *Gemini) GenerateProductDescription(ctx context.Context, name, category string, price float64) (string, error) {
	prompt := fmt.Sprintf("You are a premium e-commerce copywriter. Write a sophisticated, 2-sentence product description "+
		"for a %q (Category: %s, Price: ₹%s). Emphasize quality and lifestyle.", name, category, formatAmount(price))
	return g.text(ctx, prompt, nil)
}

func (g *Gemini) GenerateMarketingEmail(ctx context.Context, topic, discountCode string) (string, error) {
	var b strings.Builder
	b.WriteString("Write a short, punchy marketing email for an e-commerce store named 'FYX'.\n")
	fmt.Fprintf(&b, "Topic: %s.\n", topic)
	if discountCode != "" {
		fmt.Fprintf(&b, "Include this discount code: %s.\n", discountCode)
	}
	b.WriteString("Tone: Exclusive, Hype, Premium.\nStructure: Subject Line, then Body.")
	return g.text(ctx, b.String(), nil)
}

func (g *Gemini) AnalyzeSalesTrends(ctx context.Context, orderCount int, revenue float64) (string, error) {
	prompt := fmt.Sprintf("As an e-commerce business analyst, provide a short 2-sentence summary of store performance "+
		"given %d orders and ₹%s revenue today. Use a professional tone.", orderCount, formatAmount(revenue))
	return g.text(ctx, prompt, nil)
}

func (g *Gemini) ChatWithCustomer(ctx context.Context, message, pageContext string) (string, error) {
	instruction := fmt.Sprintf("You are a helpful assistant for FYX, a premium e-commerce store.\n"+
		"Context: %s.\nKeep answers under 30 words. Be polite and snappy.", pageContext)
	return g.text(ctx, message, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	})
}

func (g *Gemini) GenerateProductImage(ctx context.Context, prompt string) (*model.Image, error) {
	resp, err := g.models.GenerateContent(ctx, g.imageModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return &model.Image{ContentType: part.InlineData.MIMEType, Data: part.InlineData.Data}, nil
		}
	}
	return nil, nil
}

func (g *Gemini) text(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.textModel, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Text()), nil
}

func formatAmount(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
