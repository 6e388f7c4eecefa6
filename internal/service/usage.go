package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rahulbariki/brand-automation/common/id"
	"github.com/Rahulbariki/brand-automation/core/config"
	"github.com/Rahulbariki/brand-automation/internal/model"
	"github.com/Rahulbariki/brand-automation/internal/store"
)

var ErrQuotaExceeded = errors.New("monthly quota exceeded")

// QuotaError carries the numbers a 403 response reports back to the caller.
// errors.Is(err, ErrQuotaExceeded) matches it.
type QuotaError struct {
	Limit int64 `json:"limit"`
	Used  int64 `json:"used"`
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("monthly quota exceeded: %d of %d used", e.Used, e.Limit)
}

func (e *QuotaError) Is(target error) bool { return target == ErrQuotaExceeded }

// Unlimited marks plans without a monthly cap.
const Unlimited int64 = -1

type UsageSummary struct {
	Plan      model.Plan `json:"plan"`
	Inherited bool       `json:"inherited"`
	Used      int64      `json:"used"`
	Limit     int64      `json:"limit"` // -1 means unlimited
	Remaining int64      `json:"remaining"`
}

type UsageService interface {
	// Authorize checks the billing owner's calendar-month usage against the
	// entitled plan's cap. Admins and enterprise plans always pass.
	Authorize(ctx context.Context, user *model.User, ent Entitlement) error
	// Record appends one metered request against the billing owner. Exempt
	// users are still recorded; only enforcement is bypassed.
	Record(ctx context.Context, ent Entitlement, endpoint string, tokens *int) error
	Summary(ctx context.Context, user *model.User, ent Entitlement) (UsageSummary, error)
}

type usageService struct {
	usageStore store.UsageStore
	quota      config.QuotaConfig
}

func NewUsageService(usageStore store.UsageStore, quota config.QuotaConfig) UsageService {
	return &usageService{
		usageStore: usageStore,
		quota:      quota,
	}
}

// Authorize and Record run as separate statements around the handler, so two
// racing requests near the cap can both pass the check. The quota is a soft
// limit; the overshoot is bounded by request concurrency.
func (s *usageService) Authorize(ctx context.Context, user *model.User, ent Entitlement) error {
	limit := s.limitFor(user, ent)
	if limit == Unlimited {
		return nil
	}

	used, err := s.usageStore.CountSince(ctx, ent.BillingUserID, monthStart(time.Now()))
	if err != nil {
		return fmt.Errorf("counting usage: %w", err)
	}
	if used >= limit {
		return &QuotaError{Limit: limit, Used: used}
	}
	return nil
}

func (s *usageService) Record(ctx context.Context, ent Entitlement, endpoint string, tokens *int) error {
	log := &model.UsageLog{
		ID:           id.New(),
		UserID:       ent.BillingUserID,
		Endpoint:     endpoint,
		TokensUsed:   tokens,
		RequestCount: 1,
	}
	if err := s.usageStore.Record(ctx, log); err != nil {
		// metering must not fail the request that already succeeded
		slog.ErrorContext(ctx, "failed to record usage",
			"error", err,
			"user_id", ent.BillingUserID,
			"endpoint", endpoint,
		)
		return err
	}
	return nil
}

func (s *usageService) Summary(ctx context.Context, user *model.User, ent Entitlement) (UsageSummary, error) {
	used, err := s.usageStore.CountSince(ctx, ent.BillingUserID, monthStart(time.Now()))
	if err != nil {
		return UsageSummary{}, fmt.Errorf("counting usage: %w", err)
	}

	limit := s.limitFor(user, ent)
	remaining := Unlimited
	if limit != Unlimited {
		remaining = limit - used
		if remaining < 0 {
			remaining = 0
		}
	}

	return UsageSummary{
		Plan:      ent.Plan,
		Inherited: ent.Inherited,
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
	}, nil
}

func (s *usageService) limitFor(user *model.User, ent Entitlement) int64 {
	if user.IsAdmin || ent.Plan == model.PlanEnterprise {
		return Unlimited
	}
	if ent.Plan == model.PlanPro {
		return int64(s.quota.ProMonthly)
	}
	return int64(s.quota.FreeMonthly)
}

// monthStart returns the first instant of now's calendar month in UTC.
func monthStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
