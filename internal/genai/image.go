package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ImageConfig wires the two remote logo providers. Empty URLs disable the
// corresponding step and the chain falls through to the local renderer.
type ImageConfig struct {
	PrimaryURL   string // POST, JSON body, bearer auth
	PrimaryToken string
	SecondaryURL string // GET, prompt escaped into the path
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// ImageGenerator produces a logo for a prompt. Implementations return a
// data URI or a fetchable URL; callers must not assume which.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type imageChain struct {
	cfg    ImageConfig
	client *http.Client
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewImageChain(cfg ImageConfig) ImageGenerator {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &imageChain{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		sleep:  sleepCtx,
	}
}

// Generate walks primary, secondary, then the deterministic local renderer.
// It fails only when the context is done before any step succeeds.
func (g *imageChain) Generate(ctx context.Context, prompt string) (string, error) {
	if g.cfg.PrimaryURL != "" {
		uri, err := g.primary(ctx, prompt)
		if err == nil {
			return uri, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.WarnContext(ctx, "primary image provider failed, falling back", "error", err)
	}

	if g.cfg.SecondaryURL != "" {
		uri, err := g.secondary(ctx, prompt)
		if err == nil {
			return uri, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.WarnContext(ctx, "secondary image provider failed, using local renderer", "error", err)
	}

	return RenderLogoSVG(prompt), nil
}

func (g *imageChain) primary(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return "", err
	}

	attempts := g.cfg.MaxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := g.sleep(ctx, g.cfg.RetryBackoff); err != nil {
				return "", err
			}
		}

		uri, retryable, err := g.primaryOnce(ctx, body)
		if err == nil {
			return uri, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		slog.DebugContext(ctx, "primary image provider warming up, retrying",
			"attempt", attempt+1, "error", err)
	}
	return "", lastErr
}

func (g *imageChain) primaryOnce(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.PrimaryURL, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.PrimaryToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.PrimaryToken)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		// model still loading on the provider side
		io.Copy(io.Discard, resp.Body)
		return "", true, fmt.Errorf("primary provider unavailable: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", false, fmt.Errorf("primary provider: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, err
	}
	if len(data) == 0 {
		return "", false, fmt.Errorf("primary provider: empty response")
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}
	return dataURI(contentType, data), false, nil
}

func (g *imageChain) secondary(ctx context.Context, prompt string) (string, error) {
	target := strings.TrimRight(g.cfg.SecondaryURL, "/") + "/" + url.PathEscape(prompt) +
		"?width=1024&height=1024&nologo=true"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("secondary provider: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("secondary provider: unexpected content type %q", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return dataURI(contentType, data), nil
}

func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
