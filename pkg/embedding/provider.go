package embedding

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

// EmbeddingResponse wraps the vector returned by a provider.
type EmbeddingResponse struct {
	Embedding EmbeddingValues
}

type EmbeddingValues struct {
	Values []float32
}
