package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mbavault/nbauto/internal/summarize"
)

// Summarizer mirrors document.Summarizer so the cache can wrap any
// implementation.
type Summarizer interface {
	SummarizeWithVariables(ctx context.Context, input string, variables map[string]string, promptName string) (summarize.Result, error)
}

// CachedSummarizer memoizes successful summaries by content hash, so
// re-processing an unchanged vault does not re-invoke the backend. Only
// StateSummary results are cached; empty and unavailable outcomes are cheap
// to recompute and may change once a backend is configured.
type CachedSummarizer struct {
	inner Summarizer
	cache *expirable.LRU[string, string]
}

func NewCachedSummarizer(inner Summarizer, size int, ttl time.Duration) *CachedSummarizer {
	if size <= 0 {
		size = 4096
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedSummarizer{
		inner: inner,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (c *CachedSummarizer) SummarizeWithVariables(ctx context.Context, input string, variables map[string]string, promptName string) (summarize.Result, error) {
	content := input
	if v, ok := variables["content"]; ok {
		content = v
	}
	key := cacheKey(promptName, content)
	if text, ok := c.cache.Get(key); ok {
		return summarize.Result{State: summarize.StateSummary, Text: text}, nil
	}
	res, err := c.inner.SummarizeWithVariables(ctx, input, variables, promptName)
	if err != nil {
		return res, err
	}
	if res.State == summarize.StateSummary && res.Text != "" {
		c.cache.Add(key, res.Text)
	}
	return res, nil
}

func cacheKey(promptName, content string) string {
	hash := sha256.Sum256([]byte(promptName + "\x00" + content))
	return hex.EncodeToString(hash[:])
}
