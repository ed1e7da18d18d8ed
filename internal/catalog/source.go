package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/drstein77/storefront/internal/compress"
	"github.com/drstein77/storefront/internal/models"
)

// Source is one place a catalog can be read from.
type Source interface {
	Fetch(ctx context.Context) ([]models.Product, error)
	String() string
}

// Keeper reads the catalog from a database.
type Keeper interface {
	GetAllProducts(context.Context) ([]models.Product, error)
}

// NewSource picks a source for location. A non-nil keeper always wins.
func NewSource(location string, keeper Keeper, client *http.Client) Source {
	if keeper != nil {
		return &KeeperSource{keeper: keeper}
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		return &HTTPSource{url: location, client: client}
	}
	return &FileSource{path: location}
}

type FileSource struct {
	path string
}

func (s *FileSource) Fetch(_ context.Context) ([]models.Product, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".zip":
		zr, err := compress.NewZipReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read zip catalog: %w", err)
		}
		defer zr.Close()
		r = zr
	case ".tar":
		tr, err := compress.NewTarReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read tar catalog: %w", err)
		}
		defer tr.Close()
		r = tr
	}

	return Decode(r)
}

func (s *FileSource) String() string {
	return s.path
}

type HTTPSource struct {
	url    string
	client *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch catalog: unexpected status %s", resp.Status)
	}

	return Decode(resp.Body)
}

func (s *HTTPSource) String() string {
	return s.url
}

type KeeperSource struct {
	keeper Keeper
}

func (s *KeeperSource) Fetch(ctx context.Context) ([]models.Product, error) {
	return s.keeper.GetAllProducts(ctx)
}

func (s *KeeperSource) String() string {
	return "database"
}
