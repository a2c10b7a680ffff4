package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/revand/jobpilot/internal/models"
	"github.com/revand/jobpilot/internal/utils"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return utils.ErrDuplicate
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	f.creates++
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	upserts  int
	failWith error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.Profile{}}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, utils.ErrNotFound
}

func (f *fakeProfileRepo) Upsert(_ context.Context, p *models.Profile) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.profiles[p.UserID] = p
	f.upserts++
	return nil
}

type fakeResumeRepo struct {
	resumes []*models.Resume
}

func (f *fakeResumeRepo) Insert(_ context.Context, r *models.Resume) error {
	f.resumes = append(f.resumes, r)
	return nil
}

func (f *fakeResumeRepo) Latest(_ context.Context, userID string) (*models.Resume, error) {
	var latest *models.Resume
	for _, r := range f.resumes {
		if r.UserID != userID {
			continue
		}
		if latest == nil || r.UploadedAt.After(latest.UploadedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, utils.ErrNotFound
	}
	return latest, nil
}

type fakeJobRepo struct {
	jobs []*models.Job
}

func (f *fakeJobRepo) Insert(_ context.Context, j *models.Job) error {
	f.jobs = append(f.jobs, j)
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, userID, jobID string) (*models.Job, error) {
	for _, j := range f.jobs {
		if j.UserID == userID && j.JobID == jobID {
			return j, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeJobRepo) ListByUser(_ context.Context, userID string) ([]models.Job, error) {
	out := []models.Job{}
	for _, j := range f.jobs {
		if j.UserID == userID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Delete(_ context.Context, userID, jobID string) error {
	for i, j := range f.jobs {
		if j.UserID == userID && j.JobID == jobID {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeJobRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, j := range f.jobs {
		if j.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeApplicationRepo struct {
	applications []*models.Application
}

func (f *fakeApplicationRepo) Insert(_ context.Context, a *models.Application) error {
	for _, existing := range f.applications {
		if existing.UserID == a.UserID && existing.JobID == a.JobID {
			return utils.ErrDuplicate
		}
	}
	f.applications = append(f.applications, a)
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, userID, applicationID string) (*models.Application, error) {
	for _, a := range f.applications {
		if a.UserID == userID && a.ApplicationID == applicationID {
			return a, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeApplicationRepo) GetByJob(_ context.Context, userID, jobID string) (*models.Application, error) {
	for _, a := range f.applications {
		if a.UserID == userID && a.JobID == jobID {
			return a, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeApplicationRepo) ListByUser(_ context.Context, userID string) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range f.applications {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, userID, applicationID string, status models.ApplicationStatus, updatedAt time.Time) error {
	for _, a := range f.applications {
		if a.UserID == userID && a.ApplicationID == applicationID {
			a.Status = status
			a.UpdatedAt = updatedAt
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeApplicationRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, a := range f.applications {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) CountByStatus(_ context.Context, userID string) (map[string]int64, error) {
	out := map[string]int64{}
	for _, a := range f.applications {
		if a.UserID == userID {
			out[string(a.Status)]++
		}
	}
	return out, nil
}

type fakeGenerator struct {
	resumeText  string
	coverText   string
	resumeErr   error
	coverErr    error
	resumeCalls int
	coverCalls  int
}

func (f *fakeGenerator) TailoredResume(_ context.Context, _ models.ResumeDocument, _ *models.Job) (string, error) {
	f.resumeCalls++
	return f.resumeText, f.resumeErr
}

func (f *fakeGenerator) CoverLetter(_ context.Context, _ models.ResumeDocument, _ *models.Job) (string, error) {
	f.coverCalls++
	return f.coverText, f.coverErr
}

type fakeCache struct {
	data map[string][]byte
	sets int
	dels []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	f.data[key] = b
	f.sets++
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
		f.dels = append(f.dels, k)
	}
	return nil
}

type fakeProvider struct {
	reply      string
	err        error
	lastPrompt string
	lastMime   string
	fileCalls  int
}

func (f *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func (f *fakeProvider) GenerateWithFile(_ context.Context, _ string, mimeType string, _ []byte) (string, error) {
	f.fileCalls++
	f.lastMime = mimeType
	return f.reply, f.err
}

func (f *fakeProvider) Close() error { return nil }

var errFakeUpload = errors.New("upload failed")

type fakeUploader struct {
	objects map[string][]byte
	fail    bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string][]byte{}}
}

func (f *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	if f.fail {
		return "", errFakeUpload
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[objectName] = b
	return objectName, nil
}
