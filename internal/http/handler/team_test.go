package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Rahulbariki/brand-automation/internal/http/handler"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/service"
)

var _ = Describe("TeamHandler", func() {
	var (
		router *gin.Engine
		teams  *mockTeamService
		owner  *model.User
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		teams = &mockTeamService{}
		owner = &model.User{ID: 1, Email: "owner@example.com"}

		h := handler.NewTeamHandler(teams)
		router = gin.New()
		group := router.Group("", authenticated(owner, service.Entitlement{Plan: model.PlanEnterprise, BillingUserID: 1}))
		group.POST("/create", h.Create)
		group.POST("/invite", h.Invite)
		group.DELETE("/members/:userID", h.RemoveMember)
		group.GET("/my-team", h.MyTeam)
	})

	Describe("POST /create", func() {
		It("returns 201 with the team", func() {
			teams.createFn = func(_ context.Context, u *model.User, name string) (*model.Team, error) {
				Expect(u.ID).To(Equal(int64(1)))
				return &model.Team{ID: 20, OwnerUserID: u.ID, Name: name}, nil
			}

			body, _ := json.Marshal(map[string]any{"team_name": "Acme Design"})
			req := httptest.NewRequest(http.MethodPost, "/create", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("returns 409 when the owner already has a team", func() {
			teams.createFn = func(_ context.Context, _ *model.User, _ string) (*model.Team, error) {
				return nil, service.ErrTeamExists
			}

			body, _ := json.Marshal(map[string]any{"team_name": "Second"})
			req := httptest.NewRequest(http.MethodPost, "/create", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("POST /invite", func() {
		It("returns 404 when the invitee has no account", func() {
			teams.inviteFn = func(_ context.Context, _ *model.User, _ string, _ model.TeamRole) (*model.TeamMember, error) {
				return nil, service.ErrInviteeNotFound
			}

			body, _ := json.Marshal(map[string]any{"email": "nobody@example.com"})
			req := httptest.NewRequest(http.MethodPost, "/invite", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 409 when the invitee already belongs to a team", func() {
			teams.inviteFn = func(_ context.Context, _ *model.User, _ string, _ model.TeamRole) (*model.TeamMember, error) {
				return nil, service.ErrAlreadyMember
			}

			body, _ := json.Marshal(map[string]any{"email": "member@example.com"})
			req := httptest.NewRequest(http.MethodPost, "/invite", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 201 and passes the role through", func() {
			teams.inviteFn = func(_ context.Context, _ *model.User, email string, role model.TeamRole) (*model.TeamMember, error) {
				Expect(email).To(Equal("member@example.com"))
				Expect(role).To(Equal(model.TeamRoleEditor))
				return &model.TeamMember{ID: 11, TeamID: 20, UserID: 2, Role: role}, nil
			}

			body, _ := json.Marshal(map[string]any{"email": "member@example.com", "role": "editor"})
			req := httptest.NewRequest(http.MethodPost, "/invite", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
		})
	})

	Describe("DELETE /members/:userID", func() {
		It("returns 200 on success", func() {
			teams.removeMemberFn = func(_ context.Context, _ *model.User, memberUserID int64) error {
				Expect(memberUserID).To(Equal(int64(2)))
				return nil
			}

			req := httptest.NewRequest(http.MethodDelete, "/members/2", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodDelete, "/members/bogus", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 when the member is not on the team", func() {
			teams.removeMemberFn = func(_ context.Context, _ *model.User, _ int64) error {
				return service.ErrMemberNotFound
			}

			req := httptest.NewRequest(http.MethodDelete, "/members/2", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /my-team", func() {
		It("returns a null team for users with no affiliation", func() {
			teams.myTeamFn = func(_ context.Context, _ *model.User) (*service.TeamView, error) {
				return nil, service.ErrTeamNotFound
			}

			req := httptest.NewRequest(http.MethodGet, "/my-team", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["team"]).To(BeNil())
		})

		It("returns the owner view", func() {
			teams.myTeamFn = func(_ context.Context, _ *model.User) (*service.TeamView, error) {
				return &service.TeamView{IsOwner: true, TeamID: 20, TeamName: "Acme Design"}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/my-team", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var view service.TeamView
			Expect(json.Unmarshal(w.Body.Bytes(), &view)).To(Succeed())
			Expect(view.IsOwner).To(BeTrue())
			Expect(view.TeamName).To(Equal("Acme Design"))
		})
	})
})
