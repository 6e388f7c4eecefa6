package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Rahulbariki/brand-automation/internal/http/handler"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

var _ = Describe("BrandingHandler", func() {
	var (
		router   *gin.Engine
		branding *mockBrandingService
		usage    *mockUsageService
		user     *model.User
		ent      service.Entitlement
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		branding = &mockBrandingService{}
		usage = &mockUsageService{}
		user = &model.User{ID: 7, Email: "alice@example.com"}
		ent = service.Entitlement{Plan: model.PlanPro, BillingUserID: 7}

		h := handler.NewBrandingHandler(branding, usage)
		router = gin.New()
		group := router.Group("", authenticated(user, ent))
		group.POST("/generate-brand", h.GenerateBrand)
		group.POST("/generate-logo", h.GenerateLogo)
		group.POST("/chat", h.Chat)
	})

	Describe("POST /generate-brand", func() {
		It("returns the names and meters the request", func() {
			tokens := 321
			branding.generateBrandNamesFn = func(_ context.Context, userID int64, in service.BrandNamesInput) ([]string, *int, error) {
				Expect(userID).To(Equal(int64(7)))
				Expect(in.Industry).To(Equal("fintech"))
				return []string{"Lumina", "Vantage"}, &tokens, nil
			}
			var metered *int
			var meteredFor int64
			usage.recordFn = func(_ context.Context, e service.Entitlement, endpoint string, t *int) error {
				Expect(endpoint).To(Equal("generate-brand"))
				meteredFor = e.BillingUserID
				metered = t
				return nil
			}

			body, _ := json.Marshal(map[string]any{"industry": "fintech", "tone": "bold"})
			req := httptest.NewRequest(http.MethodPost, "/generate-brand", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string][]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["names"]).To(Equal([]string{"Lumina", "Vantage"}))
			Expect(metered).To(HaveValue(Equal(321)))
			Expect(meteredFor).To(Equal(int64(7)))
		})

		It("returns 400 on a body missing required fields", func() {
			req := httptest.NewRequest(http.MethodPost, "/generate-brand", bytes.NewBufferString(`{"industry":"fintech"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 and skips metering on service failure", func() {
			branding.generateBrandNamesFn = func(_ context.Context, _ int64, _ service.BrandNamesInput) ([]string, *int, error) {
				return nil, nil, errors.New("provider down")
			}
			recorded := false
			usage.recordFn = func(_ context.Context, _ service.Entitlement, _ string, _ *int) error {
				recorded = true
				return nil
			}

			body, _ := json.Marshal(map[string]any{"industry": "fintech", "tone": "bold"})
			req := httptest.NewRequest(http.MethodPost, "/generate-brand", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(recorded).To(BeFalse())
		})

		It("still answers 200 when metering fails", func() {
			branding.generateBrandNamesFn = func(_ context.Context, _ int64, _ service.BrandNamesInput) ([]string, *int, error) {
				return []string{"Lumina"}, nil, nil
			}
			usage.recordFn = func(_ context.Context, _ service.Entitlement, _ string, _ *int) error {
				return errors.New("insert failed")
			}

			body, _ := json.Marshal(map[string]any{"industry": "fintech", "tone": "bold"})
			req := httptest.NewRequest(http.MethodPost, "/generate-brand", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("POST /generate-logo", func() {
		It("returns the prompt and image", func() {
			branding.generateLogoFn = func(_ context.Context, _ int64, in service.LogoInput) (service.LogoResult, *int, error) {
				Expect(in.BrandName).To(Equal("Lumina"))
				return service.LogoResult{
					Prompt: "A professional logo for Lumina",
					Image:  "data:image/svg+xml;base64,xyz",
				}, nil, nil
			}

			body, _ := json.Marshal(map[string]any{"brand_name": "Lumina"})
			req := httptest.NewRequest(http.MethodPost, "/generate-logo", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp service.LogoResult
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Prompt).To(Equal("A professional logo for Lumina"))
			Expect(resp.Image).NotTo(BeEmpty())
		})
	})

	Describe("POST /chat", func() {
		It("returns the assistant reply", func() {
			branding.chatFn = func(_ context.Context, _ int64, message string) (service.TextResult, error) {
				Expect(message).To(Equal("help me name a bakery"))
				return service.TextResult{Text: "How about these directions..."}, nil
			}

			body, _ := json.Marshal(map[string]any{"message": "help me name a bakery"})
			req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]string
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["reply"]).NotTo(BeEmpty())
		})
	})
})
