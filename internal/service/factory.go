package service

import (
	"github.com/Rahulbariki/brand-automation/core/config"
	"github.com/Rahulbariki/brand-automation/internal/genai"
	"github.com/Rahulbariki/brand-automation/internal/store"
	"github.com/Rahulbariki/brand-automation/internal/token"
)

type Services struct {
	stores   *store.Stores
	verifier *token.Verifier
	llm      genai.LLM
	images   genai.ImageGenerator
	cfg      config.Config
}

func NewServices(stores *store.Stores, verifier *token.Verifier, llm genai.LLM, images genai.ImageGenerator, cfg config.Config) *Services {
	return &Services{
		stores:   stores,
		verifier: verifier,
		llm:      llm,
		images:   images,
		cfg:      cfg,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.verifier, s.cfg.WorkOS)
}

func (s *Services) Policy() PolicyService {
	return NewPolicyService(s.stores.Users(), s.stores.Teams(), s.stores.Grants())
}

func (s *Services) Usage() UsageService {
	return NewUsageService(s.stores.Usage(), s.cfg.Quota)
}

func (s *Services) Teams() TeamService {
	return NewTeamService(s.stores.Teams(), s.stores.Users())
}

func (s *Services) Branding() BrandingService {
	return NewBrandingService(s.llm, s.images, s.stores.Content())
}

func (s *Services) Workspaces() WorkspaceService {
	return NewWorkspaceService(s.stores.Workspaces(), s.llm)
}

func (s *Services) Billing() BillingService {
	return NewBillingService(s.stores.Users(), s.cfg.Billing, s.cfg.FrontendURL)
}

func (s *Services) Admin() AdminService {
	return NewAdminService(
		s.stores.Users(),
		s.stores.Usage(),
		s.stores.Content(),
		s.stores.Grants(),
		s.stores.Stats(),
	)
}
