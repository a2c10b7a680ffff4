package llm

import (
	"context"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
)

type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	m := c.GenerativeModel(modelName)
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Generate(ctx context.Context, prompt string) (string, error) {
	return v.collect(v.model.GenerateContentStream(ctx, vertexgenai.Text(prompt)))
}

func (v *VertexGemini) GenerateWithFile(ctx context.Context, prompt string, mimeType string, data []byte) (string, error) {
	return v.collect(v.model.GenerateContentStream(ctx,
		vertexgenai.Blob{MIMEType: mimeType, Data: data},
		vertexgenai.Text(prompt),
	))
}

func (v *VertexGemini) collect(it *vertexgenai.GenerateContentResponseIterator) (string, error) {
	var sb strings.Builder
	for {
		resp, err := it.Next()
		if err == iterator.Done {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}

		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(vertexgenai.Text); ok {
					sb.WriteString(string(t))
				}
			}
		}
	}
}
