package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rahulbariki/brand-automation/common/id"
	"github.com/Rahulbariki/brand-automation/internal/genai"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/store"
)

const assistantSystemPrompt = "You are an expert branding assistant. Provide helpful, strategic, and concise advice."

var fallbackPalette = []string{"#000000", "#FFFFFF", "#808080", "#C0C0C0", "#333333"}

const unavailableText = "The branding assistant is unavailable right now. Please try again in a moment."

type BrandNamesInput struct {
	Industry    string   `json:"industry" binding:"required"`
	Tone        string   `json:"tone" binding:"required"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
}

type ContentInput struct {
	BrandName   string `json:"brand_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Tone        string `json:"tone"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

type SentimentInput struct {
	Text      string `json:"text" binding:"required"`
	BrandTone string `json:"brand_tone"`
}

type SentimentResult struct {
	Sentiment     string  `json:"sentiment"`
	Confidence    float64 `json:"confidence"`
	ToneAlignment string  `json:"tone_alignment"`
}

type LogoInput struct {
	BrandName string   `json:"brand_name" binding:"required"`
	Industry  string   `json:"industry"`
	Style     string   `json:"style"`
	Keywords  []string `json:"keywords"`
	// Concepts fans the generation out, one image per concept prompt.
	Concepts []string `json:"concepts"`
}

type LogoResult struct {
	Prompt   string                `json:"prompt"`
	Image    string                `json:"image,omitempty"`
	Concepts []genai.ConceptResult `json:"concepts,omitempty"`
}

type PitchInput struct {
	ProductName string `json:"product_name" binding:"required"`
	Problem     string `json:"problem" binding:"required"`
	Solution    string `json:"solution" binding:"required"`
	Audience    string `json:"audience"`
}

type InvestorEmailInput struct {
	StartupName  string `json:"startup_name" binding:"required"`
	InvestorName string `json:"investor_name" binding:"required"`
	KeyMetrics   string `json:"key_metrics"`
	Ask          string `json:"ask"`
}

// TextResult carries generated text plus token usage for metering.
type TextResult struct {
	Text   string `json:"text"`
	Tokens *int   `json:"-"`
}

// BrandingService runs the generation endpoints. Provider failures degrade
// to documented fallbacks instead of surfacing as errors; every successful
// generation is archived to the content log.
type BrandingService interface {
	GenerateBrandNames(ctx context.Context, userID int64, in BrandNamesInput) ([]string, *int, error)
	GenerateContent(ctx context.Context, userID int64, in ContentInput) (TextResult, error)
	AnalyzeSentiment(ctx context.Context, userID int64, in SentimentInput) (SentimentResult, *int, error)
	GetColors(ctx context.Context, userID int64, industry, tone string) ([]string, *int, error)
	Chat(ctx context.Context, userID int64, message string) (TextResult, error)
	GenerateLogo(ctx context.Context, userID int64, in LogoInput) (LogoResult, *int, error)
	GenerateTagline(ctx context.Context, userID int64, brandName, industry string) (TextResult, error)
	GeneratePitch(ctx context.Context, userID int64, in PitchInput) (TextResult, error)
	GenerateInvestorEmail(ctx context.Context, userID int64, in InvestorEmailInput) (TextResult, error)
}

type brandingService struct {
	llm          genai.LLM
	images       genai.ImageGenerator
	contentStore store.ContentStore
}

func NewBrandingService(llm genai.LLM, images genai.ImageGenerator, contentStore store.ContentStore) BrandingService {
	return &brandingService{
		llm:          llm,
		images:       images,
		contentStore: contentStore,
	}
}

type brandNamesResponse struct {
	Names []string `json:"names" jsonschema_description:"Ten unique brand-ready names"`
}

func (s *brandingService) GenerateBrandNames(ctx context.Context, userID int64, in BrandNamesInput) ([]string, *int, error) {
	description := in.Description
	if description == "" {
		description = "N/A"
	}
	prompt := fmt.Sprintf(`You are a professional naming consultant. Generate 10 unique, %s, and brand-ready names for a %s business.
Keywords: %s
Description: %s`,
		in.Tone, in.Industry, strings.Join(in.Keywords, ", "), description)

	var out brandNamesResponse
	resp, err := s.llm.Chat(ctx, genai.ChatRequest{
		SystemPrompt: assistantSystemPrompt,
		UserPrompt:   prompt,
		SchemaName:   "brand_names",
		Schema:       genai.GenerateSchema[brandNamesResponse](),
		Temperature:  genai.Temp(0.8),
	}, &out)
	if err != nil {
		slog.WarnContext(ctx, "brand name generation degraded", "error", err)
		return []string{"Name generation unavailable", "Please try again"}, nil, nil
	}

	s.archive(ctx, userID, "brand_names", strings.Join(out.Names, ", "))
	return out.Names, tokenTotal(resp), nil
}

func (s *brandingService) GenerateContent(ctx context.Context, userID int64, in ContentInput) (TextResult, error) {
	language := in.Language
	if language == "" {
		language = "English"
	}
	prompt := fmt.Sprintf(`Write a %s %s for a brand named %q.
Description: %s
Language: %s

Ensure the content is engaging, professional, and optimized for the target audience.`,
		in.Tone, in.ContentType, in.BrandName, in.Description, language)

	return s.text(ctx, userID, "marketing_content", "You are an expert marketing copywriter.", prompt, nil)
}

func (s *brandingService) AnalyzeSentiment(ctx context.Context, userID int64, in SentimentInput) (SentimentResult, *int, error) {
	tone := in.BrandTone
	if tone == "" {
		tone = "professional"
	}
	prompt := fmt.Sprintf(`Analyze the sentiment of the following customer review based on a %q brand tone.
Review: %q

Report the sentiment (Positive, Neutral, or Negative), a confidence score between 0.0 and 1.0, and a brief comment on how the review fits the brand tone.`,
		tone, in.Text)

	var out SentimentResult
	resp, err := s.llm.Chat(ctx, genai.ChatRequest{
		UserPrompt:  prompt,
		SchemaName:  "sentiment",
		Schema:      genai.GenerateSchema[SentimentResult](),
		Temperature: genai.Temp(0.1),
	}, &out)
	if err != nil {
		slog.WarnContext(ctx, "sentiment analysis degraded", "error", err)
		return SentimentResult{Sentiment: "Unknown", Confidence: 0, ToneAlignment: "Analysis unavailable"}, nil, nil
	}

	s.archive(ctx, userID, "sentiment", out.Sentiment)
	return out, tokenTotal(resp), nil
}

type paletteResponse struct {
	Colors []string `json:"colors" jsonschema_description:"Five hex color codes"`
}

func (s *brandingService) GetColors(ctx context.Context, userID int64, industry, tone string) ([]string, *int, error) {
	prompt := fmt.Sprintf("Suggest a color palette of 5 hex codes for a %s brand in the %s industry.", tone, industry)

	var out paletteResponse
	resp, err := s.llm.Chat(ctx, genai.ChatRequest{
		UserPrompt: prompt,
		SchemaName: "color_palette",
		Schema:     genai.GenerateSchema[paletteResponse](),
	}, &out)
	if err != nil || len(out.Colors) == 0 {
		slog.WarnContext(ctx, "palette generation degraded", "error", err)
		return fallbackPalette, nil, nil
	}

	s.archive(ctx, userID, "color_palette", strings.Join(out.Colors, ", "))
	return out.Colors, tokenTotal(resp), nil
}

func (s *brandingService) Chat(ctx context.Context, userID int64, message string) (TextResult, error) {
	return s.text(ctx, userID, "chat", assistantSystemPrompt, message, nil)
}

func (s *brandingService) GenerateLogo(ctx context.Context, userID int64, in LogoInput) (LogoResult, *int, error) {
	prompt := fmt.Sprintf(`Create a highly detailed image-generation prompt for a logo.
Brand Name: %s
Industry: %s
Style: %s
Keywords: %s

The prompt should describe visual elements, colors, mood, and lighting. Return ONLY the prompt text.`,
		in.BrandName, in.Industry, in.Style, strings.Join(in.Keywords, ", "))

	imagePrompt, resp, err := s.llm.ChatText(ctx, genai.ChatRequest{UserPrompt: prompt})
	if err != nil {
		slog.WarnContext(ctx, "logo prompt generation degraded", "error", err)
		imagePrompt = "A professional logo for " + in.BrandName
	}

	result := LogoResult{Prompt: imagePrompt}

	if len(in.Concepts) > 0 {
		prompts := make([]string, len(in.Concepts))
		for i, concept := range in.Concepts {
			prompts[i] = imagePrompt + ", " + concept
		}
		result.Concepts = genai.GenerateBatch(ctx, s.images, prompts)
	} else {
		image, err := s.images.Generate(ctx, imagePrompt)
		if err != nil {
			return LogoResult{}, nil, err
		}
		result.Image = image
	}

	s.archive(ctx, userID, "logo", imagePrompt)
	return result, tokenTotal(resp), nil
}

func (s *brandingService) GenerateTagline(ctx context.Context, userID int64, brandName, industry string) (TextResult, error) {
	prompt := fmt.Sprintf("Create a catchy tagline for %s (%s). Return only the tagline.", brandName, industry)
	res, err := s.text(ctx, userID, "tagline", "", prompt, nil)
	res.Text = strings.ReplaceAll(res.Text, `"`, "")
	return res, err
}

func (s *brandingService) GeneratePitch(ctx context.Context, userID int64, in PitchInput) (TextResult, error) {
	prompt := fmt.Sprintf(`Create a compelling 1-minute elevator pitch for a startup.
Product: %s
Problem: %s
Solution: %s
Target Audience: %s

Format:
1. Hook
2. The Pain (Problem)
3. The Gain (Solution)
4. Traction/Ask`,
		in.ProductName, in.Problem, in.Solution, in.Audience)

	return s.text(ctx, userID, "pitch", "", prompt, nil)
}

func (s *brandingService) GenerateInvestorEmail(ctx context.Context, userID int64, in InvestorEmailInput) (TextResult, error) {
	prompt := fmt.Sprintf(`Write a cold email to an investor.
Startup: %s
Investor: %s
Metrics: %s
Ask: %s

Keep it short, punchy, and professional.`,
		in.StartupName, in.InvestorName, in.KeyMetrics, in.Ask)

	return s.text(ctx, userID, "investor_email", "", prompt, nil)
}

func (s *brandingService) text(ctx context.Context, userID int64, contentType, system, prompt string, temp *float64) (TextResult, error) {
	out, resp, err := s.llm.ChatText(ctx, genai.ChatRequest{
		SystemPrompt: system,
		UserPrompt:   prompt,
		Temperature:  temp,
	})
	if err != nil {
		slog.WarnContext(ctx, "text generation degraded",
			"content_type", contentType, "error", err)
		return TextResult{Text: unavailableText}, nil
	}

	s.archive(ctx, userID, contentType, out)
	return TextResult{Text: out, Tokens: tokenTotal(resp)}, nil
}

// archive failures are logged, never propagated: the generation already
// succeeded from the caller's point of view.
func (s *brandingService) archive(ctx context.Context, userID int64, contentType, content string) {
	rec := &model.GeneratedContent{
		ID:          id.New(),
		UserID:      userID,
		ContentType: contentType,
		Content:     content,
	}
	if err := s.contentStore.Create(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to archive generated content",
			"error", err,
			"user_id", userID,
			"content_type", contentType,
		)
	}
}

func tokenTotal(resp *genai.ChatResponse) *int {
	if resp == nil {
		return nil
	}
	total := resp.PromptTokens + resp.CompletionTokens
	return &total
}
