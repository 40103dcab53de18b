package report

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CountByDepartmentAndStatus(ctx context.Context) ([]DepartmentStatusCount, error)
	AvgUtilization(ctx context.Context, totalPerYear int) (float64, error)
	TopLeaveTypes(ctx context.Context, limit int) ([]LeaveTypeCount, error)
	MonthlyTrend(ctx context.Context, months int) ([]MonthlyTrendPoint, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountByDepartmentAndStatus(ctx context.Context) ([]DepartmentStatusCount, error) {
	var rows []DepartmentStatusCount
	err := r.db.WithContext(ctx).Raw(`
SELECT u.department AS department, l.status AS status, COUNT(*) AS count
FROM leaves l
JOIN users u ON u.id = l.user_id
GROUP BY u.department, l.status
ORDER BY u.department, l.status
`).Scan(&rows).Error
	return rows, err
}

// AvgUtilization is the mean share of the yearly allowance already spent,
// across all users, in [0, 1].
func (r *repository) AvgUtilization(ctx context.Context, totalPerYear int) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Raw(`
SELECT COALESCE(AVG((? - remaining_leaves)::float / ?), 0)
FROM users
`, totalPerYear, totalPerYear).Scan(&avg).Error
	return avg, err
}

func (r *repository) TopLeaveTypes(ctx context.Context, limit int) ([]LeaveTypeCount, error) {
	var rows []LeaveTypeCount
	err := r.db.WithContext(ctx).Raw(`
SELECT leave_type, COUNT(*) AS count
FROM leaves
GROUP BY leave_type
ORDER BY count DESC, leave_type
LIMIT ?
`, limit).Scan(&rows).Error
	return rows, err
}

func (r *repository) MonthlyTrend(ctx context.Context, months int) ([]MonthlyTrendPoint, error) {
	var rows []MonthlyTrendPoint
	err := r.db.WithContext(ctx).Raw(`
SELECT to_char(date_trunc('month', start_date), 'YYYY-MM') AS month, COUNT(*) AS count
FROM leaves
WHERE start_date >= date_trunc('month', NOW()) - (? * INTERVAL '1 month')
GROUP BY 1
ORDER BY 1
`, months).Scan(&rows).Error
	return rows, err
}
