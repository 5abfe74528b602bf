package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxDatasetSize bounds how much of a remote dataset is read.
const maxDatasetSize = 8 << 20

// LoadError records a dataset that could not be read, fetched or parsed.
// The dataset is treated as empty.
type LoadError struct {
	Dataset Dataset
	Source  string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s dataset from %s: %v", e.Dataset, sourceLabel(e.Source), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader reads datasets from files, URLs or the embedded defaults.
type Loader struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		l.httpClient = c
	}
}

// WithLogger sets the logger for load results.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches both datasets concurrently with a default Loader.
func Load(ctx context.Context, kanaSource, foodSource string) *Vocabulary {
	return NewLoader().Load(ctx, kanaSource, foodSource)
}

// Load fetches both datasets concurrently. A source is a file path, an
// http(s) URL, or empty for the embedded default. A failing source yields an
// empty dataset and a LoadError in Vocabulary.Failures; Load itself never
// fails.
func (l *Loader) Load(ctx context.Context, kanaSource, foodSource string) *Vocabulary {
	var (
		entries []VocabularyEntry
		food    []FoodEntry
		kanaErr *LoadError
		foodErr *LoadError
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entries, kanaErr = l.LoadKana(gctx, kanaSource)
		return nil
	})
	g.Go(func() error {
		food, foodErr = l.LoadFood(gctx, foodSource)
		return nil
	})
	_ = g.Wait()

	v := New(entries, food)
	for _, e := range []*LoadError{kanaErr, foodErr} {
		if e != nil {
			v.Failures = append(v.Failures, e)
		}
	}
	return v
}

// LoadKana reads the kana dataset from source.
func (l *Loader) LoadKana(ctx context.Context, source string) ([]VocabularyEntry, *LoadError) {
	var doc struct {
		Entries []VocabularyEntry `json:"kanaAssociations"`
	}
	if err := l.decode(ctx, KanaDataset, source, &doc); err != nil {
		return nil, err
	}
	l.logger.Info("dataset loaded",
		zap.String("dataset", string(KanaDataset)),
		zap.String("source", sourceLabel(source)),
		zap.Int("entries", len(doc.Entries)),
	)
	return doc.Entries, nil
}

// LoadFood reads the food dataset from source.
func (l *Loader) LoadFood(ctx context.Context, source string) ([]FoodEntry, *LoadError) {
	var doc struct {
		Entries []FoodEntry `json:"kanaEntries"`
	}
	if err := l.decode(ctx, FoodDataset, source, &doc); err != nil {
		return nil, err
	}
	l.logger.Info("dataset loaded",
		zap.String("dataset", string(FoodDataset)),
		zap.String("source", sourceLabel(source)),
		zap.Int("entries", len(doc.Entries)),
	)
	return doc.Entries, nil
}

func (l *Loader) decode(ctx context.Context, ds Dataset, source string, out any) *LoadError {
	fail := func(err error) *LoadError {
		le := &LoadError{Dataset: ds, Source: source, Err: err}
		l.logger.Warn("dataset unavailable",
			zap.String("dataset", string(ds)),
			zap.String("source", sourceLabel(source)),
			zap.Error(err),
		)
		return le
	}

	raw, err := l.read(ctx, ds, source)
	if err != nil {
		return fail(err)
	}
	if err := validate(ds, raw); err != nil {
		return fail(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fail(fmt.Errorf("decode: %w", err))
	}
	return nil
}

func (l *Loader) read(ctx context.Context, ds Dataset, source string) ([]byte, error) {
	switch {
	case source == "":
		return embedded(ds)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.fetch(ctx, source)
	default:
		return os.ReadFile(source)
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetSize))
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return data, nil
}

func sourceLabel(source string) string {
	if source == "" {
		return "embedded"
	}
	return source
}
