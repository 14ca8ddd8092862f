package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"voice-demo-generator/internal/common/logger"
	"voice-demo-generator/internal/common/tts"
)

const keyPrefix = "tts:segment:"

// Recorder observes cache lookups.
type Recorder interface {
	CacheLookup(hit bool)
}

// SegmentCache stores synthesized audio in Redis keyed by everything that shapes the output.
// Redis failures are logged and never fail a synthesis.
type SegmentCache struct {
	next     tts.Service
	rdb      redis.Cmdable
	ttl      time.Duration
	modelID  string
	format   string
	logger   logger.Logger
	recorder Recorder
}

func NewSegmentCache(next tts.Service, rdb redis.Cmdable, modelID, outputFormat string, ttl time.Duration, log logger.Logger, rec Recorder) *SegmentCache {
	return &SegmentCache{
		next:     next,
		rdb:      rdb,
		ttl:      ttl,
		modelID:  modelID,
		format:   outputFormat,
		logger:   log.With(map[string]interface{}{"component": "segment-cache"}),
		recorder: rec,
	}
}

// Key returns the cache key for a request synthesized with modelID into outputFormat.
func Key(modelID, outputFormat string, req tts.Request) string {
	s := req.Settings
	raw := fmt.Sprintf("%s|%s|%s|%.4f|%.4f|%.4f|%t|%s",
		modelID, outputFormat, req.VoiceID, s.Stability, s.SimilarityBoost, s.Style, s.UseSpeakerBoost, req.Text)
	sum := sha256.Sum256([]byte(raw))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *SegmentCache) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	key := Key(c.modelID, c.format, req)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil && len(data) > 0:
		c.record(true)
		c.logger.Debug("Segment cache hit", map[string]interface{}{"voiceId": req.VoiceID})
		return data, nil
	case err != nil && !errors.Is(err, redis.Nil):
		c.logger.Warn("Segment cache read failed", map[string]interface{}{"error": err})
	}
	c.record(false)

	data, err = c.next.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Segment cache write failed", map[string]interface{}{"error": err})
	}
	return data, nil
}

func (c *SegmentCache) record(hit bool) {
	if c.recorder != nil {
		c.recorder.CacheLookup(hit)
	}
}
