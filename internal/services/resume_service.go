package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revand/jobpilot/internal/models"
	"github.com/revand/jobpilot/internal/providers/llm"
	mongorepo "github.com/revand/jobpilot/internal/repositories/mongo"
	pgrepo "github.com/revand/jobpilot/internal/repositories/postgres"
	"github.com/revand/jobpilot/internal/storage"
	"github.com/revand/jobpilot/internal/utils"
)

const parsePrompt = `You are an expert resume parser. Extract structured information from resumes.

Extract the following information from this resume in JSON format:
{
  "name": "Full Name",
  "email": "Email",
  "phone": "Phone",
  "summary": "Professional summary",
  "skills": ["skill1", "skill2"],
  "experience": [{"title": "Job Title", "company": "Company", "duration": "Duration", "description": "Description"}],
  "education": [{"degree": "Degree", "institution": "Institution", "year": "Year"}],
  "keywords": ["keyword1", "keyword2"]
}
Return ONLY the JSON, no other text.`

type ResumeService interface {
	Upload(ctx context.Context, userID, fileName, mimeType string, data []byte) (*models.Resume, error)
	Current(ctx context.Context, userID string) (*models.Resume, error)
	Profile(ctx context.Context, userID string) (*models.Profile, error)
}

type resumeService struct {
	resumes  mongorepo.ResumeRepository
	profiles pgrepo.ProfileRepository
	parser   llm.Provider
	uploader storage.Uploader // nil disables archival
	timeout  time.Duration
}

func NewResumeService(resumes mongorepo.ResumeRepository, profiles pgrepo.ProfileRepository, parser llm.Provider, uploader storage.Uploader, timeout time.Duration) ResumeService {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &resumeService{
		resumes:  resumes,
		profiles: profiles,
		parser:   parser,
		uploader: uploader,
		timeout:  timeout,
	}
}

func (s *resumeService) Upload(ctx context.Context, userID, fileName, mimeType string, data []byte) (*models.Resume, error) {
	const op = "ResumeService.Upload"

	if userID == "" || fileName == "" || len(data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id, file_name, and file content are required", nil)
	}

	objectKey := ""
	if s.uploader != nil {
		objectKey = "resumes/" + userID + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
		stored, err := s.uploader.Upload(ctx, objectKey, mimeType, bytes.NewReader(data))
		if err != nil {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to archive resume file", err)
		}
		objectKey = stored
	}

	parsed, err := s.parse(ctx, mimeType, data)
	if err != nil {
		return nil, err
	}

	row := &models.Resume{
		ResumeID:   uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		ObjectKey:  objectKey,
		ParsedData: parsed,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.resumes.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist resume", err)
	}

	// Derived data; a failed snapshot must not fail the upload.
	_ = s.profiles.Upsert(ctx, profileFromFields(userID, parsed.Fields()))

	return row, nil
}

func (s *resumeService) parse(ctx context.Context, mimeType string, data []byte) (models.ResumeDocument, error) {
	const op = "ResumeService.parse"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.parser.GenerateWithFile(ctx, parsePrompt, mimeType, data)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to parse resume", err)
	}

	var parsed models.ResumeDocument
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &parsed); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "resume parser returned malformed output", err)
	}
	return parsed, nil
}

func (s *resumeService) Current(ctx context.Context, userID string) (*models.Resume, error) {
	const op = "ResumeService.Current"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	row, err := s.resumes.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load resume", err)
	}
	return row, nil
}

func (s *resumeService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ResumeService.Profile"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}
	return p, nil
}

func profileFromFields(userID string, f models.ResumeFields) *models.Profile {
	experience, _ := json.Marshal(f.Experience)
	education, _ := json.Marshal(f.Education)

	return &models.Profile{
		UserID:      userID,
		FullName:    f.Name,
		Email:       f.Email,
		PhoneNumber: f.Phone,
		Summary:     f.Summary,
		Skills:      f.Skills,
		Keywords:    f.Keywords,
		Experience:  experience,
		Education:   education,
		UpdatedAt:   time.Now().UTC(),
	}
}

// stripCodeFences removes a leading ```json / ``` fence pair if the
// model wrapped its reply in one.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
