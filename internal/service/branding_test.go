package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Rahulbariki/brand-automation/common/id"
	"github.com/Rahulbariki/brand-automation/internal/genai"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

// respondJSON builds a chatFn that unmarshals a canned payload into the
// caller's result struct, the way the real client does.
func respondJSON(payload string, resp *genai.ChatResponse) func(context.Context, genai.ChatRequest, any) (*genai.ChatResponse, error) {
	return func(_ context.Context, _ genai.ChatRequest, result any) (*genai.ChatResponse, error) {
		if err := json.Unmarshal([]byte(payload), result); err != nil {
			return nil, err
		}
		return resp, nil
	}
}

var _ = Describe("BrandingService", func() {
	var (
		svc      service.BrandingService
		llm      *mockLLM
		images   *mockImageGenerator
		content  *mockContentStore
		archived []*model.GeneratedContent
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		llm = &mockLLM{}
		images = &mockImageGenerator{}
		archived = nil
		content = &mockContentStore{
			createFn: func(_ context.Context, rec *model.GeneratedContent) error {
				archived = append(archived, rec)
				return nil
			},
		}
		svc = service.NewBrandingService(llm, images, content)

		Expect(id.Init(1)).To(Succeed())
	})

	Describe("GenerateBrandNames", func() {
		Context("when the model responds", func() {
			It("returns the names, archives them, and reports token usage", func() {
				llm.chatFn = respondJSON(
					`{"names":["Lumora","Brandly"]}`,
					&genai.ChatResponse{PromptTokens: 100, CompletionTokens: 50},
				)

				names, tokens, err := svc.GenerateBrandNames(ctx, 7, service.BrandNamesInput{
					Industry: "tech", Tone: "modern", Keywords: []string{"cloud"},
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(names).To(Equal([]string{"Lumora", "Brandly"}))
				Expect(tokens).To(HaveValue(Equal(150)))

				Expect(archived).To(HaveLen(1))
				Expect(archived[0].UserID).To(Equal(int64(7)))
				Expect(archived[0].ContentType).To(Equal("brand_names"))
				Expect(archived[0].Content).To(Equal("Lumora, Brandly"))
			})
		})

		Context("when the model is unavailable", func() {
			It("degrades to the placeholder names without an error", func() {
				llm.chatFn = func(_ context.Context, _ genai.ChatRequest, _ any) (*genai.ChatResponse, error) {
					return nil, errors.New("provider down")
				}

				names, tokens, err := svc.GenerateBrandNames(ctx, 7, service.BrandNamesInput{Industry: "tech", Tone: "modern"})
				Expect(err).NotTo(HaveOccurred())
				Expect(names).To(Equal([]string{"Name generation unavailable", "Please try again"}))
				Expect(tokens).To(BeNil())
				Expect(archived).To(BeEmpty())
			})
		})

		Context("when archiving fails", func() {
			It("still returns the generation", func() {
				llm.chatFn = respondJSON(`{"names":["Lumora"]}`, &genai.ChatResponse{})
				content.createFn = func(_ context.Context, _ *model.GeneratedContent) error {
					return errors.New("db down")
				}

				names, _, err := svc.GenerateBrandNames(ctx, 7, service.BrandNamesInput{Industry: "tech", Tone: "modern"})
				Expect(err).NotTo(HaveOccurred())
				Expect(names).To(Equal([]string{"Lumora"}))
			})
		})
	})

	Describe("GetColors", func() {
		It("returns the model's palette", func() {
			llm.chatFn = respondJSON(`{"colors":["#111111","#222222"]}`, &genai.ChatResponse{PromptTokens: 10, CompletionTokens: 5})

			colors, tokens, err := svc.GetColors(ctx, 7, "fashion", "bold")
			Expect(err).NotTo(HaveOccurred())
			Expect(colors).To(Equal([]string{"#111111", "#222222"}))
			Expect(tokens).To(HaveValue(Equal(15)))
		})

		It("falls back to the stock palette on an empty response", func() {
			llm.chatFn = respondJSON(`{"colors":[]}`, &genai.ChatResponse{})

			colors, tokens, err := svc.GetColors(ctx, 7, "fashion", "bold")
			Expect(err).NotTo(HaveOccurred())
			Expect(colors).To(Equal([]string{"#000000", "#FFFFFF", "#808080", "#C0C0C0", "#333333"}))
			Expect(tokens).To(BeNil())
			Expect(archived).To(BeEmpty())
		})
	})

	Describe("AnalyzeSentiment", func() {
		It("passes the model's verdict through", func() {
			llm.chatFn = respondJSON(
				`{"sentiment":"Positive","confidence":0.92,"tone_alignment":"On brand"}`,
				&genai.ChatResponse{PromptTokens: 20, CompletionTokens: 10},
			)

			res, tokens, err := svc.AnalyzeSentiment(ctx, 7, service.SentimentInput{Text: "Love it"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Sentiment).To(Equal("Positive"))
			Expect(res.Confidence).To(BeNumerically("~", 0.92, 0.001))
			Expect(tokens).To(HaveValue(Equal(30)))
		})

		It("reports Unknown when analysis is unavailable", func() {
			llm.chatFn = func(_ context.Context, _ genai.ChatRequest, _ any) (*genai.ChatResponse, error) {
				return nil, errors.New("provider down")
			}

			res, tokens, err := svc.AnalyzeSentiment(ctx, 7, service.SentimentInput{Text: "Love it"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Sentiment).To(Equal("Unknown"))
			Expect(res.ToneAlignment).To(Equal("Analysis unavailable"))
			Expect(tokens).To(BeNil())
		})
	})

	Describe("GenerateContent", func() {
		It("archives under the marketing content type", func() {
			llm.chatTextFn = func(_ context.Context, req genai.ChatRequest) (string, *genai.ChatResponse, error) {
				Expect(req.UserPrompt).To(ContainSubstring("Acme"))
				return "Launch copy", &genai.ChatResponse{PromptTokens: 8, CompletionTokens: 4}, nil
			}

			res, err := svc.GenerateContent(ctx, 7, service.ContentInput{
				BrandName: "Acme", ContentType: "Instagram Caption", Tone: "playful",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("Launch copy"))
			Expect(res.Tokens).To(HaveValue(Equal(12)))

			Expect(archived).To(HaveLen(1))
			Expect(archived[0].ContentType).To(Equal("marketing_content"))
		})

		It("degrades to the unavailable message", func() {
			llm.chatTextFn = func(_ context.Context, _ genai.ChatRequest) (string, *genai.ChatResponse, error) {
				return "", nil, errors.New("provider down")
			}

			res, err := svc.GenerateContent(ctx, 7, service.ContentInput{BrandName: "Acme", ContentType: "tweet"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(ContainSubstring("unavailable"))
			Expect(res.Tokens).To(BeNil())
		})
	})

	Describe("GenerateTagline", func() {
		It("strips quotes from the model output", func() {
			llm.chatTextFn = func(_ context.Context, _ genai.ChatRequest) (string, *genai.ChatResponse, error) {
				return `"Think different"`, &genai.ChatResponse{}, nil
			}

			res, err := svc.GenerateTagline(ctx, 7, "Acme", "tech")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("Think different"))
		})
	})

	Describe("GenerateLogo", func() {
		Context("without concepts", func() {
			It("generates one image from the model's prompt", func() {
				llm.chatTextFn = func(_ context.Context, req genai.ChatRequest) (string, *genai.ChatResponse, error) {
					Expect(req.UserPrompt).To(ContainSubstring("Acme"))
					return "neon fox emblem", &genai.ChatResponse{PromptTokens: 30, CompletionTokens: 12}, nil
				}
				images.generateFn = func(_ context.Context, prompt string) (string, error) {
					Expect(prompt).To(Equal("neon fox emblem"))
					return "data:image/png;base64,QUJD", nil
				}

				res, tokens, err := svc.GenerateLogo(ctx, 7, service.LogoInput{BrandName: "Acme", Industry: "tech"})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Prompt).To(Equal("neon fox emblem"))
				Expect(res.Image).To(Equal("data:image/png;base64,QUJD"))
				Expect(res.Concepts).To(BeEmpty())
				Expect(tokens).To(HaveValue(Equal(42)))

				Expect(archived).To(HaveLen(1))
				Expect(archived[0].ContentType).To(Equal("logo"))
			})

			It("propagates image provider failure", func() {
				llm.chatTextFn = func(_ context.Context, _ genai.ChatRequest) (string, *genai.ChatResponse, error) {
					return "neon fox emblem", &genai.ChatResponse{}, nil
				}
				images.generateFn = func(_ context.Context, _ string) (string, error) {
					return "", errors.New("all providers down")
				}

				_, _, err := svc.GenerateLogo(ctx, 7, service.LogoInput{BrandName: "Acme"})
				Expect(err).To(MatchError("all providers down"))
				Expect(archived).To(BeEmpty())
			})
		})

		Context("with concepts", func() {
			It("fans out one image per concept, appending the concept to the prompt", func() {
				llm.chatTextFn = func(_ context.Context, _ genai.ChatRequest) (string, *genai.ChatResponse, error) {
					return "base prompt", &genai.ChatResponse{}, nil
				}
				images.generateFn = func(_ context.Context, prompt string) (string, error) {
					return "img:" + prompt, nil
				}

				res, _, err := svc.GenerateLogo(ctx, 7, service.LogoInput{
					BrandName: "Acme",
					Concepts:  []string{"minimal", "retro"},
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Image).To(BeEmpty())
				Expect(res.Concepts).To(ConsistOf(
					genai.ConceptResult{Concept: "base prompt, minimal", Image: "img:base prompt, minimal"},
					genai.ConceptResult{Concept: "base prompt, retro", Image: "img:base prompt, retro"},
				))
			})
		})

		Context("when the prompt model is unavailable", func() {
			It("falls back to a plain prompt and still renders", func() {
				llm.chatTextFn = func(_ context.Context, _ genai.ChatRequest) (string, *genai.ChatResponse, error) {
					return "", nil, errors.New("provider down")
				}
				var got string
				images.generateFn = func(_ context.Context, prompt string) (string, error) {
					got = prompt
					return "data:image/svg+xml;base64,eA==", nil
				}

				res, tokens, err := svc.GenerateLogo(ctx, 7, service.LogoInput{BrandName: "Acme"})
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal("A professional logo for Acme"))
				Expect(res.Prompt).To(Equal("A professional logo for Acme"))
				Expect(tokens).To(BeNil())
			})
		})
	})

	Describe("GeneratePitch", func() {
		It("structures the prompt around the product", func() {
			llm.chatTextFn = func(_ context.Context, req genai.ChatRequest) (string, *genai.ChatResponse, error) {
				Expect(req.UserPrompt).To(SatisfyAll(
					ContainSubstring("Widget"),
					ContainSubstring("Hook"),
				))
				return strings.Repeat("pitch ", 3), &genai.ChatResponse{}, nil
			}

			res, err := svc.GeneratePitch(ctx, 7, service.PitchInput{
				ProductName: "Widget", Problem: "manual work", Solution: "automation",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Text).To(ContainSubstring("pitch"))
			Expect(archived).To(HaveLen(1))
			Expect(archived[0].ContentType).To(Equal("pitch"))
		})
	})
})
