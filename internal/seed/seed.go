// Package seed provisions sample data for local development: a handful of
// demo users, an active exercise plan, and an enabled reading plan, plus a
// dev webhook shared secret for exercising the ingress endpoint by hand. It
// is idempotent: if the first demo user already exists it logs and returns.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/ANGHOOO/godlife/internal/txn"
	"github.com/ANGHOOO/godlife/pkg/exerciseplan"
	"github.com/ANGHOOO/godlife/pkg/reading"
	"github.com/ANGHOOO/godlife/pkg/user"
)

// DevWebhookSecret is the raw shared secret logged for local webhook
// testing. It is only ever created by the seed command and its bcrypt hash
// is never checked against anything in the core — there is no provider
// signature verification in scope (§1) — it exists purely so a developer
// has something to paste into a manual curl against POST /webhooks/{provider}.
const DevWebhookSecret = "godlife_dev_seed_secret_do_not_use_in_production"

const (
	demoExternalIDAlice = "seed|alice"
	demoExternalIDBob   = "seed|bob"
)

// Run provisions the demo users and their starter plans. It is safe to run
// more than once.
func Run(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	existing, err := user.NewStore(pool).GetByExternalID(ctx, demoExternalIDAlice)
	if err == nil {
		logger.Info("seed: demo user already present, skipping", "user_id", existing.ID)
		return nil
	}

	secretHash, err := bcrypt.GenerateFromPassword([]byte(DevWebhookSecret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing dev webhook secret: %w", err)
	}
	logger.Info("seed: generated dev webhook secret",
		"raw_secret", DevWebhookSecret,
		"bcrypt_hash", string(secretHash),
	)

	return txn.Run(ctx, pool, func(ctx context.Context) error {
		dbtx := txn.FromContext(ctx)

		alice, err := user.NewStore(dbtx).Create(ctx, demoExternalIDAlice, "Alice Runner", "Asia/Seoul")
		if err != nil {
			return fmt.Errorf("creating demo user alice: %w", err)
		}
		logger.Info("seed: created user", "user", alice.DisplayName, "id", alice.ID)

		bob, err := user.NewStore(dbtx).Create(ctx, demoExternalIDBob, "Bob Reader", "America/New_York")
		if err != nil {
			return fmt.Errorf("creating demo user bob: %w", err)
		}
		logger.Info("seed: created user", "user", bob.DisplayName, "id", bob.ID)

		planSvc := exerciseplan.NewService(dbtx)
		today := time.Now().UTC().Truncate(24 * time.Hour)
		plan, err := planSvc.GeneratePlan(ctx, alice.ID, today, "rule")
		if err != nil {
			return fmt.Errorf("generating demo exercise plan: %w", err)
		}
		logger.Info("seed: generated exercise plan", "plan_id", plan.ID, "user", alice.DisplayName)

		readingStore := reading.NewStore(dbtx)
		if _, err := readingStore.CreatePlan(ctx, bob.ID, "21:00", 20); err != nil {
			return fmt.Errorf("creating demo reading plan: %w", err)
		}
		logger.Info("seed: created reading plan", "user", bob.DisplayName)

		logger.Info("seed: completed successfully", "users", 2, "exercise_plans", 1, "reading_plans", 1)
		return nil
	})
}
