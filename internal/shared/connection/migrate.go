package connection

import (
	"errors"

	"hr-dashboard/internal/config"
	"hr-dashboard/internal/interview"
	"hr-dashboard/internal/leave"
	"hr-dashboard/internal/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS notification_outbox (
	id UUID PRIMARY KEY,
	request_id TEXT,
	event_type VARCHAR(100) NOT NULL,
	topic VARCHAR(200) NOT NULL,
	recipient TEXT NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate creates or updates the schema and seeds the initial admin account.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(
		&user.User{},
		&leave.Leave{},
		&interview.Interview{},
	); err != nil {
		return err
	}

	if err := db.Exec(outboxTableDDL).Error; err != nil {
		return err
	}

	return seedAdmin(db, cfg)
}

func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		zap.L().Warn("admin seed skipped, ADMIN_PASSWORD not set")
		return nil
	}

	var existing user.User
	err := db.First(&existing, "username = ?", cfg.AdminUsername).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := user.User{
		Username:        cfg.AdminUsername,
		Password:        string(hashed),
		IsAdmin:         true,
		Department:      "HR",
		RemainingLeaves: cfg.TotalLeavesPerYear,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	zap.L().Info("admin account seeded", zap.String("username", cfg.AdminUsername))
	return nil
}
