package store

import (
	"context"
	"embed"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yallarent/yallarent/config"
	"github.com/yallarent/yallarent/internal/domain"
)

//go:embed seeds/*.json
var embeddedSeeds embed.FS

// Seeder resolves the seed resource for a collection on first run. Lookup
// order: configured seed URL, seed directory, embedded defaults, and finally
// an empty-sequence literal for the collections that start out empty.
type Seeder struct {
	dir     string
	baseURL string
	timeout time.Duration
}

func NewSeeder(cfg config.StoreConfig) *Seeder {
	return &Seeder{
		dir:     cfg.SeedDir,
		baseURL: cfg.SeedURL,
		timeout: 10 * time.Second,
	}
}

// Fetch returns the raw seed JSON for the given collection key.
func (s *Seeder) Fetch(ctx context.Context, key string) ([]byte, error) {
	if s.baseURL != "" {
		data, err := s.fetchRemote(ctx, key)
		if err == nil {
			return data, nil
		}
		zap.S().Warnf("seed fetch from %s failed for %s, trying local seed: %s", s.baseURL, key, err)
	}

	if s.dir != "" {
		path := filepath.Join(s.dir, key+".json")
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}

	if data, err := embeddedSeeds.ReadFile("seeds/" + key + ".json"); err == nil {
		return data, nil
	}

	for _, k := range domain.EmptySeedCollections {
		if k == key {
			return []byte("[]"), nil
		}
	}

	return nil, errors.Errorf("no seed resource for collection %q", key)
}

func (s *Seeder) fetchRemote(ctx context.Context, key string) ([]byte, error) {
	var (
		data []byte
		code int
	)
	url := s.baseURL + "/" + key + ".json"
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	err := gout.GET(url).
		WithContext(ctx).
		BindBody(&data).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "fetch seed %s", url)
	}
	if code != http.StatusOK {
		return nil, errors.Errorf("fetch seed %s: unexpected status %d", url, code)
	}
	return data, nil
}
