package report

type DepartmentStatusCount struct {
	Department string `json:"department"`
	Status     string `json:"status"`
	Count      int    `json:"count"`
}

type LeaveTypeCount struct {
	LeaveType string `json:"leave_type"`
	Count     int    `json:"count"`
}

type MonthlyTrendPoint struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// LeaveReport is the admin dashboard aggregate.
type LeaveReport struct {
	ByDepartment   []DepartmentStatusCount `json:"by_department"`
	AvgUtilization float64                 `json:"avg_utilization"`
	TopLeaveTypes  []LeaveTypeCount        `json:"top_leave_types"`
	MonthlyTrend   []MonthlyTrendPoint     `json:"monthly_trend"`
}
