package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/revand/jobpilot/internal/cache"
	"github.com/revand/jobpilot/internal/models"
	mongorepo "github.com/revand/jobpilot/internal/repositories/mongo"
	"github.com/revand/jobpilot/internal/utils"
)

type JobInput struct {
	Title        string
	Company      string
	Description  string
	Requirements string
	Location     string
	URL          string
}

type JobService interface {
	Create(ctx context.Context, userID string, in JobInput) (*models.Job, error)
	List(ctx context.Context, userID string) ([]models.Job, error)
	Delete(ctx context.Context, userID, jobID string) error
}

type jobService struct {
	jobs  mongorepo.JobRepository
	cache cache.Cache
}

func NewJobService(jobs mongorepo.JobRepository, c cache.Cache) JobService {
	return &jobService{jobs: jobs, cache: c}
}

func (s *jobService) Create(ctx context.Context, userID string, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if in.Title == "" || in.Company == "" || in.Description == "" || in.Requirements == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title, company, description, and requirements are required", nil)
	}

	job := &models.Job{
		JobID:        uuid.NewString(),
		UserID:       userID,
		Title:        in.Title,
		Company:      in.Company,
		Description:  in.Description,
		Requirements: in.Requirements,
		Location:     in.Location,
		URL:          in.URL,
		AddedAt:      time.Now().UTC(),
	}

	if err := s.jobs.Insert(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}

	s.invalidateStats(ctx, userID)
	return job, nil
}

func (s *jobService) List(ctx context.Context, userID string) ([]models.Job, error) {
	const op = "JobService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	rows, err := s.jobs.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return rows, nil
}

func (s *jobService) Delete(ctx context.Context, userID, jobID string) error {
	const op = "JobService.Delete"

	if userID == "" || jobID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and job_id are required", nil)
	}

	if err := s.jobs.Delete(ctx, userID, jobID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}

	s.invalidateStats(ctx, userID)
	return nil
}

func (s *jobService) invalidateStats(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, statsKey(userID))
	}
}
