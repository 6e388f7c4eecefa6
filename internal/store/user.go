package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Rahulbariki/brand-automation/internal/model"
)

const userColumns = `id, external_id, email, password_hash, full_name, provider,
	is_admin, role, is_active, subscription_plan, subscription_status, plan_source,
	billing_customer_id, billing_subscription_id, created_at, updated_at`

type userStore struct {
	q Querier
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *userStore) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID)
	return scanUser(row)
}

func (s *userStore) GetByBillingCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE billing_customer_id = $1`, customerID)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO users (
			id, external_id, email, password_hash, full_name, provider,
			is_admin, role, is_active, subscription_plan, subscription_status,
			plan_source, billing_customer_id, billing_subscription_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+userColumns,
		user.ID, user.ExternalID, user.Email, user.PasswordHash, user.FullName,
		user.Provider, user.IsAdmin, user.Role, user.IsActive,
		user.SubscriptionPlan, user.SubscriptionStatus, user.PlanSource,
		user.BillingCustomerID, user.BillingSubID,
	)

	created, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		UPDATE users SET
			external_id = $2, email = $3, password_hash = $4, full_name = $5,
			provider = $6, is_admin = $7, role = $8, is_active = $9,
			subscription_plan = $10, subscription_status = $11, plan_source = $12,
			billing_customer_id = $13, billing_subscription_id = $14,
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		user.ID, user.ExternalID, user.Email, user.PasswordHash, user.FullName,
		user.Provider, user.IsAdmin, user.Role, user.IsActive,
		user.SubscriptionPlan, user.SubscriptionStatus, user.PlanSource,
		user.BillingCustomerID, user.BillingSubID,
	)

	updated, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *updated
	return nil
}

func (s *userStore) List(ctx context.Context, limit int32) ([]model.User, error) {
	rows, err := s.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	_, err := s.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.ExternalID, &u.Email, &u.PasswordHash, &u.FullName, &u.Provider,
		&u.IsAdmin, &u.Role, &u.IsActive, &u.SubscriptionPlan, &u.SubscriptionStatus,
		&u.PlanSource, &u.BillingCustomerID, &u.BillingSubID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
