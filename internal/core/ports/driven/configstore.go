package driven

// ConfigStore provides typed access to persisted configuration.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value ("" if unset).
	GetString(key string) string

	// GetInt retrieves an integer configuration value (0 if unset).
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value (false if unset).
	GetBool(key string) bool

	// Set stores a configuration value.
	Set(key string, value any) error

	// Save persists the configuration.
	Save() error
}

// Configuration keys understood by the engine.
const (
	ConfigOpenAIAPIKey    = "openai.api_key"
	ConfigEmbeddingModel  = "openai.embedding_model"
	ConfigCompletionModel = "openai.completion_model"
	ConfigVectorBackend   = "vector.backend" // "memory" or "pinecone"
	ConfigPineconeHost    = "vector.pinecone_host"
	ConfigPineconeAPIKey  = "vector.pinecone_api_key"
	ConfigChunkSize       = "chunking.size"
	ConfigChunkOverlap    = "chunking.overlap"
	ConfigContextBudget   = "answer.context_budget"
)
