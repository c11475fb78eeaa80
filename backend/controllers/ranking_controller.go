package controllers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log"
	"time"

	"project/backend/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type RankingController struct {
	Cache  *scoring.RankingCache
	Logger *log.Logger
}

func NewRankingController(cache *scoring.RankingCache, logger *log.Logger) *RankingController {
	return &RankingController{Cache: cache, Logger: logger}
}

func clampLimit(requested, def, max int) int {
	if requested <= 0 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}

// GetRankings serves a leaderboard snapshot straight from the cache. The
// limit query parameter is clamped to 1..50 and defaults to 50.
func (rc *RankingController) GetRankings(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", scoring.RankingLimit), scoring.RankingLimit, scoring.RankingLimit)
	entries, _ := rc.Cache.Snapshot(limit)
	return c.JSON(entries)
}

type rankingEvent struct {
	Event    string      `json:"event"`
	Rankings interface{} `json:"rankings"`
}

// StreamRankings pushes leaderboard updates over server-sent events. The
// first message carries the current snapshot; after that a message goes out
// only when the cached snapshot's canonical form changes, checked once per
// refresh interval.
func (rc *RankingController) StreamRankings(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	cache := rc.Cache
	logger := rc.Logger

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		entries, canonical := cache.Snapshot(scoring.RankingLimit)
		if err := writeRankingEvent(w, "connected", entries); err != nil {
			return
		}
		lastSent := canonical

		ticker := time.NewTicker(scoring.RankingRefreshInterval)
		defer ticker.Stop()

		for range ticker.C {
			entries, canonical := cache.Snapshot(scoring.RankingLimit)
			if canonical == nil || bytes.Equal(canonical, lastSent) {
				// Heartbeat comment keeps intermediaries from timing
				// out an idle stream.
				if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
				continue
			}
			if err := writeRankingEvent(w, "update", entries); err != nil {
				if logger != nil {
					logger.Printf("ranking stream closed: %v", err)
				}
				return
			}
			lastSent = canonical
		}
	}))

	return nil
}

func writeRankingEvent(w *bufio.Writer, event string, rankings interface{}) error {
	payload, err := json.Marshal(rankingEvent{Event: event, Rankings: rankings})
	if err != nil {
		return err
	}
	if _, err := w.WriteString("data: " + string(payload) + "\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
