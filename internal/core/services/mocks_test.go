package services

import (
	"context"
	"strings"

	"github.com/meridian-labs/stratagem-cli/internal/core/domain"
	"github.com/meridian-labs/stratagem-cli/internal/core/ports/driven"
)

// fakeEmbedder returns deterministic vectors derived from the input
// text so similarity ranking in tests is reproducible.
type fakeEmbedder struct {
	embedErr   error
	batchErr   error
	pingErr    error
	batchCalls int
	batchSizes []int
	shortBatch bool
	vectorFor  func(text string) []float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	f.batchSizes = append(f.batchSizes, len(texts))
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	n := len(texts)
	if f.shortBatch && n > 0 {
		n--
	}
	vectors := make([][]float32, n)
	for i := 0; i < n; i++ {
		vectors[i] = f.vector(texts[i])
	}
	return vectors, nil
}

func (f *fakeEmbedder) vector(text string) []float32 {
	if f.vectorFor != nil {
		return f.vectorFor(text)
	}
	// Length-keyed unit-ish vector, good enough for plumbing tests.
	return []float32{float32(len(text)), 1}
}

func (f *fakeEmbedder) Dimensions() int                { return 2 }
func (f *fakeEmbedder) ModelName() string              { return "fake-embedder" }
func (f *fakeEmbedder) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeEmbedder) Close() error                   { return nil }

// fakeIndex records every call so tests can assert call order and the
// delete-before-upsert discipline.
type fakeIndex struct {
	records map[string]domain.EmbeddingRecord

	upsertErr error
	queryErr  error
	deleteErr error

	calls   []string
	deletes []driven.Filter
	matches []driven.VectorMatch
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{records: make(map[string]domain.EmbeddingRecord)}
}

func (f *fakeIndex) Upsert(ctx context.Context, records []domain.EmbeddingRecord) error {
	f.calls = append(f.calls, "upsert")
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, r := range records {
		f.records[r.ID] = r
	}
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, vector []float32, topK int, filter driven.Filter) ([]driven.VectorMatch, error) {
	f.calls = append(f.calls, "query")
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	out := make([]driven.VectorMatch, 0, len(f.matches))
	for _, m := range f.matches {
		if filter.Label != "" && m.Label != filter.Label {
			continue
		}
		out = append(out, m)
	}
	if topK < len(out) {
		out = out[:topK]
	}
	return out, nil
}

func (f *fakeIndex) Delete(ctx context.Context, filter driven.Filter) error {
	f.calls = append(f.calls, "delete")
	f.deletes = append(f.deletes, filter)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for id, r := range f.records {
		if filter.Matches(&r) {
			delete(f.records, id)
		}
	}
	return nil
}

func (f *fakeIndex) Count(ctx context.Context) (int, error) {
	return len(f.records), nil
}

func (f *fakeIndex) Close() error { return nil }

// fakeLLM returns a canned answer and counts invocations.
type fakeLLM struct {
	answer  string
	err     error
	pingErr error

	calls      int
	lastSystem string
	lastUser   string
	lastOpts   driven.CompleteOptions
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string, opts driven.CompleteOptions) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) ModelName() string              { return "fake-llm" }
func (f *fakeLLM) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeLLM) Close() error                   { return nil }

// fakePrompts serves fixed prompt text.
type fakePrompts struct {
	system   string
	template string
	err      error
}

func (f *fakePrompts) Load(name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	switch name {
	case driven.PromptAdvisorSystem:
		return f.system, nil
	case driven.PromptAnalysisTemplate:
		return f.template, nil
	}
	return "", domain.ErrNotFound
}

// fakeDocStore is an in-memory DocumentStore.
type fakeDocStore struct {
	docs map[string]*domain.Document

	saveErr      error
	setStatusErr error
	deleted      []string
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: make(map[string]*domain.Document)}
}

func (f *fakeDocStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocStore) SetStatus(ctx context.Context, id string, status domain.IndexStatus) error {
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	return nil
}

func (f *fakeDocStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeDocStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDocStore) CountByLabel(ctx context.Context) (map[domain.Label]int, error) {
	counts := make(map[domain.Label]int)
	for _, d := range f.docs {
		counts[d.Label]++
	}
	return counts, nil
}

func (f *fakeDocStore) DeleteDocument(ctx context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeQueryStore is an in-memory QueryStore.
type fakeQueryStore struct {
	records []domain.QueryRecord
	saveErr error
}

func (f *fakeQueryStore) SaveQuery(ctx context.Context, rec *domain.QueryRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeQueryStore) ListQueries(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	out := make([]domain.QueryRecord, limit)
	// Newest first.
	for i := 0; i < limit; i++ {
		out[i] = f.records[len(f.records)-1-i]
	}
	return out, nil
}

func (f *fakeQueryStore) CountQueries(ctx context.Context) (int, error) {
	return len(f.records), nil
}

// fakeExtractor decodes bytes as text or fails on demand.
type fakeExtractor struct {
	err error
}

func (f *fakeExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if strings.HasSuffix(filename, ".bin") {
		return "", domain.ErrUnsupportedFormat
	}
	return string(data), nil
}
