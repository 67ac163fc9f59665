// Command stratagem is the strategic decision engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/meridian-labs/stratagem-cli/internal/adapters/driven/config/file"
	embeddingopenai "github.com/meridian-labs/stratagem-cli/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/meridian-labs/stratagem-cli/internal/adapters/driven/llm/openai"
	"github.com/meridian-labs/stratagem-cli/internal/adapters/driven/storage/sqlite"
	"github.com/meridian-labs/stratagem-cli/internal/adapters/driven/vector/memory"
	"github.com/meridian-labs/stratagem-cli/internal/adapters/driven/vector/pinecone"
	"github.com/meridian-labs/stratagem-cli/internal/adapters/driving/cli"
	"github.com/meridian-labs/stratagem-cli/internal/chunker"
	"github.com/meridian-labs/stratagem-cli/internal/classifier"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
	"github.com/meridian-labs/stratagem-cli/internal/core/services"
	"github.com/meridian-labs/stratagem-cli/internal/extractors"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; environment overrides config file values.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("config store: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("prompt store: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("metadata store: %w", err)
	}
	defer store.Close()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = configStore.GetString(driven.ConfigOpenAIAPIKey)
	}

	embedder, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
		APIKey: apiKey,
		Model:  configStore.GetString(driven.ConfigEmbeddingModel),
	})
	if err != nil {
		return fmt.Errorf("embedding service: %w", err)
	}
	defer embedder.Close()

	llm, err := llmopenai.NewCompletionService(llmopenai.Config{
		APIKey: apiKey,
		Model:  configStore.GetString(driven.ConfigCompletionModel),
	})
	if err != nil {
		return fmt.Errorf("completion service: %w", err)
	}
	defer llm.Close()

	index, err := newVectorIndex(configStore)
	if err != nil {
		return fmt.Errorf("vector index: %w", err)
	}
	defer index.Close()

	chunkerOpts := []chunker.Option{}
	if size := configStore.GetInt(driven.ConfigChunkSize); size > 0 {
		chunkerOpts = append(chunkerOpts, chunker.WithSize(size))
	}
	if overlap := configStore.GetInt(driven.ConfigChunkOverlap); overlap > 0 {
		chunkerOpts = append(chunkerOpts, chunker.WithOverlap(overlap))
	}
	ch, err := chunker.New(chunkerOpts...)
	if err != nil {
		return fmt.Errorf("chunker: %w", err)
	}

	indexer := services.NewIndexer(embedder, index)
	retriever := services.NewRetriever(embedder, index)
	composer := services.NewComposer(llm, promptStore)
	if budget := configStore.GetInt(driven.ConfigContextBudget); budget > 0 {
		composer.SetContextBudget(budget)
	}

	ingest := services.NewIngestService(
		extractors.DefaultRegistry(),
		classifier.New(classifier.DefaultRules()),
		ch,
		indexer,
		store.DocumentStore(),
	)
	ask := services.NewAskService(retriever, composer, store.QueryStore())
	docs := services.NewDocumentService(
		store.DocumentStore(),
		store.QueryStore(),
		indexer,
		index,
		embedder,
		llm,
	)

	cli.SetVersion(version)
	cli.SetServices(ingest, ask, docs)
	return cli.Execute()
}

// newVectorIndex selects the vector backend from configuration.
// The in-memory index is the default; it holds vectors for the life of
// the process only, which suits smoke testing without a Pinecone index.
func newVectorIndex(cfg driven.ConfigStore) (driven.VectorIndex, error) {
	switch backend := cfg.GetString(driven.ConfigVectorBackend); backend {
	case "", "memory":
		return memory.NewIndex(), nil
	case "pinecone":
		host := os.Getenv("PINECONE_HOST")
		if host == "" {
			host = cfg.GetString(driven.ConfigPineconeHost)
		}
		apiKey := os.Getenv("PINECONE_API_KEY")
		if apiKey == "" {
			apiKey = cfg.GetString(driven.ConfigPineconeAPIKey)
		}
		return pinecone.NewIndex(pinecone.Config{
			Host:   host,
			APIKey: apiKey,
		})
	default:
		return nil, fmt.Errorf("unknown vector backend %q", backend)
	}
}
