package interview

import "time"

// Interview IDs are kept dense: after any delete the surviving rows are
// renumbered to 1..N and the sequence is rewound to match. ID is therefore a
// display ordinal, not a stable reference.
type Interview struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CandidateName string    `gorm:"size:255;not null" json:"candidate_name"`
	InterviewDate time.Time `gorm:"not null" json:"interview_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Interview) TableName() string {
	return "interviews"
}
