package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Rahulbariki/brand-automation/core/config"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/store"
)

var (
	ErrBillingNotConfigured = errors.New("billing is not configured")
	ErrInvalidPlan          = errors.New("invalid plan")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
)

const (
	EventCheckoutCompleted   = "checkout.completed"
	EventSubscriptionDeleted = "subscription.deleted"
)

// BillingEvent is a verified webhook event from the payment provider.
type BillingEvent struct {
	Type string           `json:"type"`
	Data BillingEventData `json:"data"`
}

type BillingEventData struct {
	ClientReferenceID string `json:"client_reference_id"`
	CustomerID        string `json:"customer"`
	SubscriptionID    string `json:"subscription"`
	Plan              string `json:"plan"`
}

type BillingService interface {
	CreateCheckoutSession(ctx context.Context, user *model.User, plan model.Plan) (string, error)
	// VerifyAndParse checks the timestamp+v1 signature header against the
	// shared secret and decodes the event payload.
	VerifyAndParse(payload []byte, sigHeader string, now time.Time) (*BillingEvent, error)
	HandleEvent(ctx context.Context, event *BillingEvent) error
}

type billingService struct {
	userStore store.UserStore
	cfg       config.BillingConfig
	frontend  string
}

func NewBillingService(userStore store.UserStore, cfg config.BillingConfig, frontendURL string) BillingService {
	return &billingService{
		userStore: userStore,
		cfg:       cfg,
		frontend:  frontendURL,
	}
}

func (s *billingService) CreateCheckoutSession(ctx context.Context, user *model.User, plan model.Plan) (string, error) {
	if s.cfg.CheckoutURL == "" {
		return "", ErrBillingNotConfigured
	}
	if plan != model.PlanPro && plan != model.PlanEnterprise {
		return "", ErrInvalidPlan
	}

	q := url.Values{}
	q.Set("plan", string(plan))
	q.Set("client_reference_id", strconv.FormatInt(user.ID, 10))
	q.Set("customer_email", user.Email)
	q.Set("success_url", s.frontend+"/dashboard?success=true")
	q.Set("cancel_url", s.frontend+"/dashboard?canceled=true")

	slog.InfoContext(ctx, "checkout session requested",
		"user_id", user.ID,
		"plan", plan,
	)
	return s.cfg.CheckoutURL + "?" + q.Encode(), nil
}

// VerifyAndParse expects a Stripe-style signature header:
// "t=<unix>,v1=<hex hmac of "<unix>.<payload>">".
func (s *billingService) VerifyAndParse(payload []byte, sigHeader string, now time.Time) (*BillingEvent, error) {
	if s.cfg.WebhookSecret == "" {
		return nil, ErrBillingNotConfigured
	}

	ts, sigs := parseSignatureHeader(sigHeader)
	if ts == 0 || len(sigs) == 0 {
		return nil, ErrInvalidSignature
	}

	age := now.Sub(time.Unix(ts, 0))
	if age < 0 {
		age = -age
	}
	if s.cfg.Tolerance > 0 && age > s.cfg.Tolerance {
		return nil, ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(s.cfg.WebhookSecret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	expected := mac.Sum(nil)

	matched := false
	for _, sig := range sigs {
		raw, err := hex.DecodeString(sig)
		if err == nil && hmac.Equal(raw, expected) {
			matched = true
		}
	}
	if !matched {
		return nil, ErrInvalidSignature
	}

	var event BillingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	return &event, nil
}

func (s *billingService) HandleEvent(ctx context.Context, event *BillingEvent) error {
	switch event.Type {
	case EventCheckoutCompleted:
		return s.checkoutCompleted(ctx, event.Data)
	case EventSubscriptionDeleted:
		return s.subscriptionDeleted(ctx, event.Data)
	default:
		// unknown event types are acknowledged, not failed
		slog.DebugContext(ctx, "ignoring billing event", "type", event.Type)
		return nil
	}
}

func (s *billingService) checkoutCompleted(ctx context.Context, data BillingEventData) error {
	userID, err := strconv.ParseInt(data.ClientReferenceID, 10, 64)
	if err != nil {
		slog.WarnContext(ctx, "checkout event without usable reference id",
			"client_reference_id", data.ClientReferenceID)
		return nil
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "checkout event for unknown user", "user_id", userID)
			return nil
		}
		return fmt.Errorf("fetching user: %w", err)
	}

	plan := model.Plan(data.Plan)
	if plan != model.PlanPro && plan != model.PlanEnterprise {
		plan = model.PlanPro
	}

	user.SubscriptionPlan = plan
	user.SubscriptionStatus = "active"
	user.PlanSource = model.PlanSourceBilling
	if data.CustomerID != "" {
		user.BillingCustomerID = &data.CustomerID
	}
	if data.SubscriptionID != "" {
		user.BillingSubID = &data.SubscriptionID
	}
	if err := s.userStore.Update(ctx, user); err != nil {
		return fmt.Errorf("upgrading user: %w", err)
	}

	slog.InfoContext(ctx, "subscription activated", "user_id", user.ID, "plan", plan)
	return nil
}

func (s *billingService) subscriptionDeleted(ctx context.Context, data BillingEventData) error {
	if data.CustomerID == "" {
		return nil
	}

	user, err := s.userStore.GetByBillingCustomerID(ctx, data.CustomerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "subscription event for unknown customer",
				"customer_id", data.CustomerID)
			return nil
		}
		return fmt.Errorf("fetching user: %w", err)
	}

	// admin-granted plans survive billing churn
	if user.PlanSource == model.PlanSourceAdmin {
		user.BillingSubID = nil
		if err := s.userStore.Update(ctx, user); err != nil {
			return fmt.Errorf("clearing subscription: %w", err)
		}
		return nil
	}

	user.SubscriptionPlan = model.PlanFree
	user.SubscriptionStatus = "inactive"
	user.PlanSource = model.PlanSourceDefault
	user.BillingSubID = nil
	if err := s.userStore.Update(ctx, user); err != nil {
		return fmt.Errorf("downgrading user: %w", err)
	}

	slog.InfoContext(ctx, "subscription cancelled", "user_id", user.ID)
	return nil
}

func parseSignatureHeader(header string) (int64, []string) {
	var ts int64
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, _ = strconv.ParseInt(v, 10, 64)
		case "v1":
			sigs = append(sigs, v)
		}
	}
	return ts, sigs
}
