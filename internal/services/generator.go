package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revand/jobpilot/internal/models"
	"github.com/revand/jobpilot/internal/providers/llm"
)

// ArtifactGenerator produces the per-application texts. Both calls are
// independent; neither depends on the other's output.
type ArtifactGenerator interface {
	TailoredResume(ctx context.Context, resume models.ResumeDocument, job *models.Job) (string, error)
	CoverLetter(ctx context.Context, resume models.ResumeDocument, job *models.Job) (string, error)
}

type llmGenerator struct {
	provider llm.Provider
}

func NewArtifactGenerator(provider llm.Provider) ArtifactGenerator {
	return &llmGenerator{provider: provider}
}

func (g *llmGenerator) TailoredResume(ctx context.Context, resume models.ResumeDocument, job *models.Job) (string, error) {
	prompt := fmt.Sprintf(`You are an expert resume writer who creates ATS-optimized, tailored resumes.

Based on the candidate's resume data and the job requirements, create a tailored resume that highlights relevant skills and experience.

Candidate Resume Data:
%s

Job Description:
%s

Job Requirements:
%s

Generate a professional, ATS-optimized resume in plain text format. Focus on matching keywords and highlighting relevant experience.`,
		renderResumeData(resume), job.Description, job.Requirements)

	return g.provider.Generate(ctx, prompt)
}

func (g *llmGenerator) CoverLetter(ctx context.Context, resume models.ResumeDocument, job *models.Job) (string, error) {
	name := resume.Fields().Name
	if name == "" {
		name = "Candidate"
	}

	prompt := fmt.Sprintf(`You are an expert cover letter writer who creates compelling, personalized cover letters.

Write a professional cover letter for the following:

Candidate Name: %s
Job Title: %s
Company: %s
Job Description: %s

Candidate Background:
%s

Create a compelling cover letter that showcases why the candidate is a great fit for this role.`,
		name, job.Title, job.Company, job.Description, renderResumeData(resume))

	return g.provider.Generate(ctx, prompt)
}

func renderResumeData(resume models.ResumeDocument) string {
	b, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
