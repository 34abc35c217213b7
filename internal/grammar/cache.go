package grammar

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/pavelanni/schreiben/internal/model"
)

// CachedChecker remembers successful results per exact text. Failures are
// not cached, so a later check reaches the backend again.
type CachedChecker struct {
	next  Checker
	cache *cache.Cache
}

// Cached wraps next with a result cache. A ttl of zero or less returns next unchanged.
func Cached(next Checker, ttl time.Duration) Checker {
	if ttl <= 0 {
		return next
	}
	return &CachedChecker{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Check returns the cached issues for text or asks the wrapped checker.
func (c *CachedChecker) Check(ctx context.Context, text string) ([]model.GrammarIssue, error) {
	key := textKey(text)
	if v, ok := c.cache.Get(key); ok {
		slog.Debug("grammar check cache hit", "key", key[:12])
		return cloneIssues(v.([]model.GrammarIssue)), nil
	}

	issues, err := c.next.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, cloneIssues(issues))
	return issues, nil
}

func textKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

func cloneIssues(in []model.GrammarIssue) []model.GrammarIssue {
	out := make([]model.GrammarIssue, len(in))
	for i, is := range in {
		is.Suggestions = slices.Clone(is.Suggestions)
		out[i] = is
	}
	return out
}
