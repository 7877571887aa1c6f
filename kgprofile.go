package kgprofile

import (
	"context"
	"log/slog"

	"github.com/serplens/kgprofile/pkg/kgsearch"
	"github.com/serplens/kgprofile/pkg/mid"
)

// Version is reported by the CLI and the server health endpoint.
const Version = "0.1.0"

// Candidate pairs one search result with its profile derivation outcome.
type Candidate struct {
	Entity  kgsearch.Entity
	Profile mid.Result
}

// Finder searches the knowledge graph and derives a candidate Discover
// profile URL for each result.
type Finder interface {
	// Find queries for an entity name and resolves every returned
	// identifier independently. A single identifier that cannot be
	// encoded never fails the batch; the outcome is carried on the
	// Candidate instead.
	Find(ctx context.Context, query string, limit int) ([]Candidate, error)
}

type finder struct {
	search kgsearch.Searcher
	logger *slog.Logger
}

// New creates a Finder over the given search client.
func New(search kgsearch.Searcher, logger *slog.Logger) Finder {
	if logger == nil {
		logger = slog.Default()
	}
	return &finder{search: search, logger: logger}
}

func (f *finder) Find(ctx context.Context, query string, limit int) ([]Candidate, error) {
	resp, err := f.search.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(resp.Entities))
	for _, entity := range resp.Entities {
		res := mid.Resolve(entity.ID)

		switch res.Status {
		case mid.StatusRangeError:
			f.logger.Warn("could not encode identifier",
				"mid", entity.ID, "entity", entity.Name, "error", res.Err)
		case mid.StatusFormatMismatch:
			f.logger.Debug("identifier format not supported",
				"mid", entity.ID, "entity", entity.Name)
		}

		candidates = append(candidates, Candidate{Entity: entity, Profile: res})
	}

	return candidates, nil
}
