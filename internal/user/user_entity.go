package user

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Username string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_username"`
	Password string `gorm:"type:text;not null"`
	IsAdmin  bool   `gorm:"not null;default:false"`

	Department string `gorm:"type:varchar(100)"`

	// Mutated only by the leave ledger (debit, refund, administrative override).
	RemainingLeaves int `gorm:"not null;default:20"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
