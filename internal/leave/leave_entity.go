package leave

import "time"

type Leave struct {
	ID     uint `gorm:"primaryKey;autoIncrement"`
	UserID uint `gorm:"not null;index:idx_leaves_user_dates"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_user_dates"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text;not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	LeaveType string    `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User *LeaveUser `gorm:"foreignKey:UserID;references:ID"`
}

// LeaveUser carries the minimal join columns the admin views need.
type LeaveUser struct {
	ID         uint   `gorm:"primaryKey"`
	Username   string `gorm:"column:username"`
	Department string `gorm:"column:department"`
}

func (LeaveUser) TableName() string {
	return "users"
}
