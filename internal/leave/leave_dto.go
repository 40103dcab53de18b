package leave

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	LeaveType string `json:"leave_type" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// AdjustBalanceRequest overwrites a user's balance. RemainingLeaves and Delta
// are independent caller inputs: the first is the new balance, the second
// only decides whether an audit entry is written.
type AdjustBalanceRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	RemainingLeaves int    `json:"remaining_leaves"`
	Delta           int    `json:"delta"`
	Reason          string `json:"reason"`
}

type LeaveResponse struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	Username   string `json:"username,omitempty"`
	Department string `json:"department,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Days       int    `json:"days"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	LeaveType  string `json:"leave_type"`
}
