package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Loader reads a dataset file once and hands the same immutable result to
// every caller for the lifetime of the process.
type Loader struct {
	path   string
	logger *slog.Logger

	once sync.Once
	ds   *Dataset
	err  error
}

func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{path: path, logger: logger}
}

// Load returns the memoized dataset, reading the source on first use. A
// failed first read is memoized too.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	l.once.Do(func() {
		l.ds, l.err = LoadFile(ctx, l.path, l.logger)
	})
	return l.ds, l.err
}

func (l *Loader) Path() string {
	return l.path
}

// LoadFile reads and parses path without memoization.
func LoadFile(ctx context.Context, path string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	logger.Info("loading dataset", "path", path)

	file, err := os.Open(path)
	if err != nil {
		cause := err
		if errors.Is(err, fs.ErrNotExist) {
			cause = fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}
		return nil, &LoadError{Source: path, Err: cause}
	}
	defer file.Close()

	ds, err := Parse(ctx, file)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = path
			return nil, le
		}
		return nil, &LoadError{Source: path, Err: err}
	}
	ds.source = path

	logger.Info("dataset loaded",
		"path", path,
		"records", ds.Len(),
		"columns", len(ds.columns),
		"duration", time.Since(start),
	)
	return ds, nil
}
