package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/revand/jobpilot/internal/cache"
	"github.com/revand/jobpilot/internal/models"
	mongorepo "github.com/revand/jobpilot/internal/repositories/mongo"
	"github.com/revand/jobpilot/internal/utils"
)

type ApplicationService interface {
	Apply(ctx context.Context, userID, jobID string) (*models.Application, error)
	Get(ctx context.Context, userID, applicationID string) (*models.Application, error)
	List(ctx context.Context, userID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID, status string) error
}

type applicationService struct {
	jobs         mongorepo.JobRepository
	resumes      mongorepo.ResumeRepository
	applications mongorepo.ApplicationRepository
	generator    ArtifactGenerator
	cache        cache.Cache
	genTimeout   time.Duration
}

func NewApplicationService(
	jobs mongorepo.JobRepository,
	resumes mongorepo.ResumeRepository,
	applications mongorepo.ApplicationRepository,
	generator ArtifactGenerator,
	c cache.Cache,
	genTimeout time.Duration,
) ApplicationService {
	if genTimeout <= 0 {
		genTimeout = 90 * time.Second
	}
	return &applicationService{
		jobs:         jobs,
		resumes:      resumes,
		applications: applications,
		generator:    generator,
		cache:        c,
		genTimeout:   genTimeout,
	}
}

// Apply runs the whole workflow: load the job, require a resume, refuse
// duplicates, generate both artifacts, persist. Generation failure is
// non-fatal; the artifact field gets a placeholder and the application
// is still written.
func (s *applicationService) Apply(ctx context.Context, userID, jobID string) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if userID == "" || jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and job_id are required", nil)
	}

	job, err := s.jobs.GetByID(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}

	resume, err := s.resumes.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "please upload a resume first", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load resume", err)
	}

	if _, err := s.applications.GetByJob(ctx, userID, jobID); err == nil {
		return nil, utils.E(utils.CodeConflict, op, "already applied to this job", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing application", err)
	}

	tailored, cover := s.generate(ctx, resume.ParsedData, job)

	now := time.Now().UTC()
	application := &models.Application{
		ApplicationID:  uuid.NewString(),
		UserID:         userID,
		JobID:          jobID,
		JobTitle:       job.Title,
		Company:        job.Company,
		Status:         models.StatusApplied,
		TailoredResume: tailored,
		CoverLetter:    cover,
		AppliedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.applications.Insert(ctx, application); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "already applied to this job", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to persist application", err)
	}

	s.invalidateStats(ctx, userID)
	return application, nil
}

// generate runs both artifact calls concurrently, each under its own
// timeout. Errors degrade to placeholder text.
func (s *applicationService) generate(ctx context.Context, resume models.ResumeDocument, job *models.Job) (tailored, cover string) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		gctx, cancel := context.WithTimeout(ctx, s.genTimeout)
		defer cancel()

		out, err := s.generator.TailoredResume(gctx, resume, job)
		if err != nil {
			tailored = "Error generating resume: " + err.Error()
			return
		}
		tailored = out
	}()

	go func() {
		defer wg.Done()
		gctx, cancel := context.WithTimeout(ctx, s.genTimeout)
		defer cancel()

		out, err := s.generator.CoverLetter(gctx, resume, job)
		if err != nil {
			cover = "Error generating cover letter: " + err.Error()
			return
		}
		cover = out
	}()

	wg.Wait()
	return tailored, cover
}

func (s *applicationService) Get(ctx context.Context, userID, applicationID string) (*models.Application, error) {
	const op = "ApplicationService.Get"

	if userID == "" || applicationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and application_id are required", nil)
	}

	a, err := s.applications.GetByID(ctx, userID, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	return a, nil
}

func (s *applicationService) List(ctx context.Context, userID string) ([]models.Application, error) {
	const op = "ApplicationService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	rows, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return rows, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, userID, applicationID, status string) error {
	const op = "ApplicationService.UpdateStatus"

	if userID == "" || applicationID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id and application_id are required", nil)
	}
	if !models.ValidStatus(status) {
		return utils.E(utils.CodeInvalidArgument, op, "invalid status", nil)
	}

	err := s.applications.UpdateStatus(ctx, userID, applicationID, models.ApplicationStatus(status), time.Now().UTC())
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to update status", err)
	}

	s.invalidateStats(ctx, userID)
	return nil
}

func (s *applicationService) invalidateStats(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, statsKey(userID))
	}
}
