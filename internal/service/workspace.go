package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/Rahulbariki/brand-automation/common/id"
	"github.com/Rahulbariki/brand-automation/internal/genai"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/store"
)

var ErrWorkspaceNotFound = errors.New("workspace not found")

const consultantSystemPrompt = "You are a world-class AI Brand Consultant. Output MUST be purely the requested format."

type WizardInput struct {
	ProjectName string `json:"project_name" binding:"required"`
	Industry    string `json:"industry" binding:"required"`
	Tone        string `json:"tone" binding:"required"`
	Audience    string `json:"audience" binding:"required"`
	Vibe        string `json:"vibe" binding:"required"`
}

// brandIdentity is the structured payload the wizard asks the model for.
// Missing fields fall back to deterministic defaults.
type brandIdentity struct {
	BrandName    string   `json:"brand_name" jsonschema_description:"A catchy brand name"`
	Tagline      string   `json:"tagline" jsonschema_description:"A short punchy tagline"`
	ColorPalette []string `json:"color_palette" jsonschema_description:"3-5 hex color codes"`
	Fonts        []string `json:"fonts" jsonschema_description:"Two font names"`
	LogoPrompt   string   `json:"logo_prompt" jsonschema_description:"A detailed image-generation prompt"`
	BrandStory   string   `json:"brand_story" jsonschema_description:"A 3-4 sentence origin story"`
}

type WorkspaceDetail struct {
	Workspace *model.Workspace          `json:"workspace"`
	Assets    []model.WorkspaceAsset    `json:"assets"`
	Timeline  []model.WorkspaceActivity `json:"timeline"`
}

type WorkspaceService interface {
	Wizard(ctx context.Context, user *model.User, in WizardInput) (*model.Workspace, error)
	List(ctx context.Context, user *model.User) ([]model.Workspace, error)
	Get(ctx context.Context, user *model.User, workspaceID int64) (*WorkspaceDetail, error)
	Delete(ctx context.Context, user *model.User, workspaceID int64) error
	Assistant(ctx context.Context, user *model.User, workspaceID int64, prompt string) (string, error)
	GenerateAsset(ctx context.Context, user *model.User, workspaceID int64, assetType string) (*model.WorkspaceAsset, error)
	AnalyzeHealth(ctx context.Context, user *model.User, workspaceID int64) (int, error)
	ExportZip(ctx context.Context, user *model.User, workspaceID int64) ([]byte, string, error)
}

type workspaceService struct {
	workspaceStore store.WorkspaceStore
	llm            genai.LLM
}

func NewWorkspaceService(workspaceStore store.WorkspaceStore, llm genai.LLM) WorkspaceService {
	return &workspaceService{
		workspaceStore: workspaceStore,
		llm:            llm,
	}
}

func (s *workspaceService) Wizard(ctx context.Context, user *model.User, in WizardInput) (*model.Workspace, error) {
	prompt := fmt.Sprintf(`Create a complete brand identity for a project named '%s'.
Industry: %s
Tone: %s
Target Audience: %s
Overall Vibe: %s`,
		in.ProjectName, in.Industry, in.Tone, in.Audience, in.Vibe)

	var identity brandIdentity
	_, err := s.llm.Chat(ctx, genai.ChatRequest{
		SystemPrompt: consultantSystemPrompt,
		UserPrompt:   prompt,
		SchemaName:   "brand_identity",
		Schema:       genai.GenerateSchema[brandIdentity](),
		Temperature:  genai.Temp(0.7),
	}, &identity)
	if err != nil {
		// the wizard still creates the workspace, just with defaults
		slog.WarnContext(ctx, "wizard identity generation degraded", "error", err)
		identity = brandIdentity{}
	}

	applyIdentityDefaults(&identity, in.ProjectName)

	ws := &model.Workspace{
		ID:           id.New(),
		UserID:       user.ID,
		ProjectName:  in.ProjectName,
		Industry:     in.Industry,
		Tone:         in.Tone,
		Audience:     in.Audience,
		Vibe:         in.Vibe,
		BrandName:    &identity.BrandName,
		Tagline:      &identity.Tagline,
		ColorPalette: identity.ColorPalette,
		Fonts:        identity.Fonts,
		LogoPrompt:   &identity.LogoPrompt,
		BrandStory:   &identity.BrandStory,
		HealthScore:  85,
	}
	if err := s.workspaceStore.Create(ctx, ws); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	s.logActivity(ctx, ws.ID, user.ID, "created", "Workspace created via Wizard")
	slog.InfoContext(ctx, "workspace created", "workspace_id", ws.ID, "user_id", user.ID)
	return ws, nil
}

func (s *workspaceService) List(ctx context.Context, user *model.User) ([]model.Workspace, error) {
	return s.workspaceStore.ListByUser(ctx, user.ID)
}

func (s *workspaceService) Get(ctx context.Context, user *model.User, workspaceID int64) (*WorkspaceDetail, error) {
	ws, err := s.owned(ctx, user, workspaceID)
	if err != nil {
		return nil, err
	}

	assets, err := s.workspaceStore.ListAssets(ctx, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	timeline, err := s.workspaceStore.ListActivities(ctx, ws.ID, 20)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	return &WorkspaceDetail{Workspace: ws, Assets: assets, Timeline: timeline}, nil
}

func (s *workspaceService) Delete(ctx context.Context, user *model.User, workspaceID int64) error {
	if _, err := s.owned(ctx, user, workspaceID); err != nil {
		return err
	}
	if err := s.workspaceStore.Delete(ctx, workspaceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("deleting workspace: %w", err)
	}
	slog.InfoContext(ctx, "workspace deleted", "workspace_id", workspaceID, "user_id", user.ID)
	return nil
}

func (s *workspaceService) Assistant(ctx context.Context, user *model.User, workspaceID int64, prompt string) (string, error) {
	ws, err := s.owned(ctx, user, workspaceID)
	if err != nil {
		return "", err
	}

	full := fmt.Sprintf(`You are the AI Brand Consultant for the brand '%s'.
Industry: %s, Tone: %s, Vibe: %s.
Tagline: %s
Story: %s

User request: %s

Respond directly, concisely, and stay perfectly in tone.`,
		deref(ws.BrandName), ws.Industry, ws.Tone, ws.Vibe,
		deref(ws.Tagline), deref(ws.BrandStory), prompt)

	reply, _, err := s.llm.ChatText(ctx, genai.ChatRequest{UserPrompt: full})
	if err != nil {
		slog.WarnContext(ctx, "workspace assistant degraded", "error", err)
		reply = unavailableText
	}

	s.logActivity(ctx, ws.ID, user.ID, "assistant_used", "Consulted Assistant")
	return reply, nil
}

func (s *workspaceService) GenerateAsset(ctx context.Context, user *model.User, workspaceID int64, assetType string) (*model.WorkspaceAsset, error) {
	ws, err := s.owned(ctx, user, workspaceID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Write a %s for %s.
Industry: %s
Tone: %s
Tagline: %s

Output JUST the text, no intro, no emojis unless requested.`,
		strings.ReplaceAll(assetType, "_", " "), deref(ws.BrandName),
		ws.Industry, ws.Tone, deref(ws.Tagline))

	content, _, err := s.llm.ChatText(ctx, genai.ChatRequest{UserPrompt: prompt})
	if err != nil {
		slog.WarnContext(ctx, "asset generation degraded", "error", err)
		content = unavailableText
	}

	asset := &model.WorkspaceAsset{
		ID:          id.New(),
		WorkspaceID: ws.ID,
		AssetType:   assetType,
		Content:     content,
	}
	if err := s.workspaceStore.AddAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("saving asset: %w", err)
	}

	s.logActivity(ctx, ws.ID, user.ID, "asset_generated", "Generated "+assetType)
	return asset, nil
}

func (s *workspaceService) AnalyzeHealth(ctx context.Context, user *model.User, workspaceID int64) (int, error) {
	ws, err := s.owned(ctx, user, workspaceID)
	if err != nil {
		return 0, err
	}

	// TODO: score from actual asset coverage once enough workspaces carry assets
	score := 75 + rand.Intn(24)
	ws.HealthScore = score
	if err := s.workspaceStore.Update(ctx, ws); err != nil {
		return 0, fmt.Errorf("saving health score: %w", err)
	}

	s.logActivity(ctx, ws.ID, user.ID, "health_check", fmt.Sprintf("Scored %d", score))
	return score, nil
}

func (s *workspaceService) ExportZip(ctx context.Context, user *model.User, workspaceID int64) ([]byte, string, error) {
	ws, err := s.owned(ctx, user, workspaceID)
	if err != nil {
		return nil, "", err
	}
	assets, err := s.workspaceStore.ListAssets(ctx, ws.ID)
	if err != nil {
		return nil, "", fmt.Errorf("listing assets: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	guidelines := fmt.Sprintf("Brand: %s\nTagline: %s\nStory: %s\nColors: %s\nFonts: %s\n",
		deref(ws.BrandName), deref(ws.Tagline), deref(ws.BrandStory),
		strings.Join(ws.ColorPalette, ", "), strings.Join(ws.Fonts, ", "))
	if err := writeZipFile(zw, "brand_guidelines.txt", guidelines); err != nil {
		return nil, "", err
	}
	if err := writeZipFile(zw, "logo_prompt.txt", deref(ws.LogoPrompt)); err != nil {
		return nil, "", err
	}
	for i, a := range assets {
		name := fmt.Sprintf("assets/%s_%d.txt", a.AssetType, i)
		if err := writeZipFile(zw, name, a.Content); err != nil {
			return nil, "", err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing archive: %w", err)
	}

	filename := strings.ReplaceAll(deref(ws.BrandName), " ", "_") + "_export.zip"
	return buf.Bytes(), filename, nil
}

// owned fetches a workspace and enforces that the caller owns it. A foreign
// workspace reads as not found, never as forbidden.
func (s *workspaceService) owned(ctx context.Context, user *model.User, workspaceID int64) (*model.Workspace, error) {
	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("fetching workspace: %w", err)
	}
	if ws.UserID != user.ID {
		return nil, ErrWorkspaceNotFound
	}
	return ws, nil
}

func (s *workspaceService) logActivity(ctx context.Context, workspaceID, userID int64, action, details string) {
	act := &model.WorkspaceActivity{
		ID:          id.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Action:      action,
		Details:     &details,
	}
	if err := s.workspaceStore.AddActivity(ctx, act); err != nil {
		slog.ErrorContext(ctx, "failed to record workspace activity",
			"error", err,
			"workspace_id", workspaceID,
			"action", action,
		)
	}
}

func applyIdentityDefaults(identity *brandIdentity, projectName string) {
	if identity.BrandName == "" {
		identity.BrandName = projectName
	}
	if len(identity.ColorPalette) == 0 {
		identity.ColorPalette = []string{"#333333", "#CCCCCC"}
	}
	if len(identity.Fonts) == 0 {
		identity.Fonts = []string{"Inter", "Roboto"}
	}
	if identity.LogoPrompt == "" {
		identity.LogoPrompt = "Minimal logo for " + projectName
	}
	if identity.BrandStory == "" {
		identity.BrandStory = "A new brand emerging in the market."
	}
}

func writeZipFile(zw *zip.Writer, name, content string) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s in archive: %w", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		return fmt.Errorf("writing %s to archive: %w", name, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
