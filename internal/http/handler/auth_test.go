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

var _ = Describe("AuthHandler", func() {
	var (
		router *gin.Engine
		svc    *mockAuthService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockAuthService{}
		h := handler.NewAuthHandler(svc, "https://app.example.com", false)
		router.POST("/signup", h.Signup)
		router.POST("/login", h.Login)
	})

	Describe("POST /signup", func() {
		It("returns 201 with the token and user", func() {
			svc.signupFn = func(_ context.Context, email, _ string, _ *string) (*model.User, string, error) {
				return &model.User{ID: 1, Email: email}, "signed-token", nil
			}

			body, _ := json.Marshal(map[string]any{
				"email":    "alice@example.com",
				"password": "hunter2-hunter2",
			})
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["token"]).To(Equal("signed-token"))
		})

		It("returns 409 when the email is taken", func() {
			svc.signupFn = func(_ context.Context, _, _ string, _ *string) (*model.User, string, error) {
				return nil, "", service.ErrEmailTaken
			}

			body, _ := json.Marshal(map[string]any{
				"email":    "alice@example.com",
				"password": "hunter2-hunter2",
			})
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 400 for a short password", func() {
			body, _ := json.Marshal(map[string]any{
				"email":    "alice@example.com",
				"password": "short",
			})
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /login", func() {
		It("returns 200 with the token", func() {
			svc.loginFn = func(_ context.Context, email, _ string) (*model.User, string, error) {
				return &model.User{ID: 1, Email: email}, "signed-token", nil
			}

			body, _ := json.Marshal(map[string]any{
				"email":    "alice@example.com",
				"password": "hunter2-hunter2",
			})
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 401 on bad credentials", func() {
			svc.loginFn = func(_ context.Context, _, _ string) (*model.User, string, error) {
				return nil, "", service.ErrInvalidCredentials
			}

			body, _ := json.Marshal(map[string]any{
				"email":    "alice@example.com",
				"password": "wrong-password",
			})
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 401 for a deactivated account", func() {
			svc.loginFn = func(_ context.Context, _, _ string) (*model.User, string, error) {
				return nil, "", service.ErrUserInactive
			}

			body, _ := json.Marshal(map[string]any{
				"email":    "alice@example.com",
				"password": "hunter2-hunter2",
			})
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 500 on unexpected failure", func() {
			svc.loginFn = func(_ context.Context, _, _ string) (*model.User, string, error) {
				return nil, "", errors.New("database down")
			}

			body, _ := json.Marshal(map[string]any{
				"email":    "alice@example.com",
				"password": "hunter2-hunter2",
			})
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
