package catalog

import (
	"context"

	"go.uber.org/zap"
)

type Log interface {
	Info(string, ...zap.Field)
	Warn(string, ...zap.Field)
	Error(string, ...zap.Field)
}

// Loader performs the single catalog read at startup.
type Loader struct {
	source  Source
	catalog *Catalog
	log     Log
}

func NewLoader(source Source, catalog *Catalog, log Log) *Loader {
	return &Loader{
		source:  source,
		catalog: catalog,
		log:     log,
	}
}

// Load reads the source once. On failure the error is logged and the
// catalog stays empty; there is no retry.
func (l *Loader) Load(ctx context.Context) {
	products, err := l.source.Fetch(ctx)
	if err != nil {
		l.log.Error("Error loading products", zap.String("source", l.source.String()), zap.Error(err))
		return
	}

	if duplicates := l.catalog.Publish(products); len(duplicates) > 0 {
		l.log.Warn("Duplicate product ids replaced", zap.Strings("ids", duplicates))
	}
	l.log.Info("Catalog loaded", zap.String("source", l.source.String()), zap.Int("count", len(products)))
}

// Start runs Load in the background. The returned channel is closed when it finishes.
func (l *Loader) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Load(ctx)
	}()
	return done
}
