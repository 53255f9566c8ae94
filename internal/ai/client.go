package ai

import (
	"context"
	"github.com/kritsada/personaguess/internal/errors"
	"github.com/sashabaranov/go-openai"
	"os"
)

type Client struct {
	client *openai.Client
}

func NewClient() Client {
	return Client{
		client: openai.NewClient(os.Getenv("OPENAI_API_KEY")),
	}
}

// Embed returns one embedding vector per input text, in input order. The
// vectors feed the narrative similarity scoring.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	response, err := c.client.CreateEmbeddings(
		ctx,
		openai.EmbeddingRequest{ //nolint:exhaustruct // this is better for readability
			Model: openai.AdaEmbeddingV2,
			Input: texts,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "create embeddings")
	}
	vectors := make([][]float32, len(response.Data))
	for i, data := range response.Data {
		vectors[i] = data.Embedding
	}
	return vectors, nil
}
