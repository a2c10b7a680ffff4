package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResumeDocumentFields(t *testing.T) {
	doc := ResumeDocument{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"phone":   "+1 555 0100",
		"summary": "Analytical engine programmer",
		"skills":  []any{"math", "go"},
		"experience": []any{
			map[string]any{
				"title":       "Engineer",
				"company":     "Babbage & Co",
				"duration":    "1840-1850",
				"description": "Wrote the first program",
			},
		},
		"education": []any{
			map[string]any{"degree": "Self-taught", "institution": "London", "year": "1835"},
		},
		"keywords": []any{"computing"},
		"extra":    "ignored",
	}

	f := doc.Fields()
	assert.Equal(t, "Ada Lovelace", f.Name)
	assert.Equal(t, "ada@example.com", f.Email)
	assert.Equal(t, []string{"math", "go"}, f.Skills)
	assert.Len(t, f.Experience, 1)
	assert.Equal(t, "Babbage & Co", f.Experience[0].Company)
	assert.Len(t, f.Education, 1)
	assert.Equal(t, "Self-taught", f.Education[0].Degree)
	assert.Equal(t, []string{"computing"}, f.Keywords)
}

func TestResumeDocumentFieldsToleratesBadShapes(t *testing.T) {
	doc := ResumeDocument{
		"name":   "Ada Lovelace",
		"skills": "math, go", // string where a list is expected
	}

	f := doc.Fields()
	assert.Equal(t, "Ada Lovelace", f.Name)
	assert.Empty(t, f.Skills)
}

func TestResumeDocumentFieldsEmpty(t *testing.T) {
	assert.Equal(t, ResumeFields{}, ResumeDocument{}.Fields())
	assert.Equal(t, ResumeFields{}, ResumeDocument(nil).Fields())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "applied", "interview", "rejected", "accepted"} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("ghosted"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Pending"))
}
