package services

import (
	"context"
	"time"

	"github.com/revand/jobpilot/internal/cache"
	mongorepo "github.com/revand/jobpilot/internal/repositories/mongo"
	"github.com/revand/jobpilot/internal/utils"
)

const statsCacheTTL = 30 * time.Second

type Stats struct {
	TotalJobs         int64            `json:"total_jobs"`
	TotalApplications int64            `json:"total_applications"`
	ByStatus          map[string]int64 `json:"by_status"`
}

type StatsService interface {
	ForUser(ctx context.Context, userID string) (*Stats, error)
}

type statsService struct {
	jobs         mongorepo.JobRepository
	applications mongorepo.ApplicationRepository
	cache        cache.Cache
}

func NewStatsService(jobs mongorepo.JobRepository, applications mongorepo.ApplicationRepository, c cache.Cache) StatsService {
	return &statsService{jobs: jobs, applications: applications, cache: c}
}

func (s *statsService) ForUser(ctx context.Context, userID string) (*Stats, error) {
	const op = "StatsService.ForUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	key := statsKey(userID)
	if s.cache != nil {
		var cached Stats
		if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	totalJobs, err := s.jobs.CountByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count jobs", err)
	}

	totalApplications, err := s.applications.CountByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}

	byStatus, err := s.applications.CountByStatus(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to aggregate statuses", err)
	}

	out := &Stats{
		TotalJobs:         totalJobs,
		TotalApplications: totalApplications,
		ByStatus:          byStatus,
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, out, statsCacheTTL)
	}
	return out, nil
}

func statsKey(userID string) string { return "stats:" + userID }
