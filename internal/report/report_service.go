package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	leaveReportCacheKey = "reports:leaves"
	leaveReportCacheTTL = 5 * time.Minute

	topLeaveTypesLimit = 5
	trendMonths        = 12
)

type Service interface {
	LeaveReport(ctx context.Context) (LeaveReport, error)
}

type service struct {
	repo         Repository
	rdb          *redis.Client
	sf           *singleflight.Group
	totalPerYear int
	logger       *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, totalPerYear int, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		repo:         repo,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		totalPerYear: totalPerYear,
		logger:       l,
	}
}

func (s *service) LeaveReport(ctx context.Context) (LeaveReport, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, leaveReportCacheKey).Result()
		if err == nil {
			var report LeaveReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return report, nil
			}
		}
	}

	// Aggregate queries are heavy; collapse concurrent dashboard loads into
	// one database round trip.
	v, err, _ := s.sf.Do(leaveReportCacheKey, func() (interface{}, error) {
		report, err := s.buildReport(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(report); err == nil {
				if err := s.rdb.Set(ctx, leaveReportCacheKey, jsonData, leaveReportCacheTTL).Err(); err != nil {
					s.logger.Warn("report cache write failed", zap.Error(err))
				}
			}
		}
		return report, nil
	})
	if err != nil {
		return LeaveReport{}, err
	}

	return v.(LeaveReport), nil
}

func (s *service) buildReport(ctx context.Context) (LeaveReport, error) {
	byDept, err := s.repo.CountByDepartmentAndStatus(ctx)
	if err != nil {
		return LeaveReport{}, err
	}
	avg, err := s.repo.AvgUtilization(ctx, s.totalPerYear)
	if err != nil {
		return LeaveReport{}, err
	}
	topTypes, err := s.repo.TopLeaveTypes(ctx, topLeaveTypesLimit)
	if err != nil {
		return LeaveReport{}, err
	}
	trend, err := s.repo.MonthlyTrend(ctx, trendMonths)
	if err != nil {
		return LeaveReport{}, err
	}

	return LeaveReport{
		ByDepartment:   byDept,
		AvgUtilization: avg,
		TopLeaveTypes:  topTypes,
		MonthlyTrend:   trend,
	}, nil
}
