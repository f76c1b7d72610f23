package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/metrics"
)

// Policy is one fixed-window limit. Counters live in Redis keyed by client
// IP (plus a hashed account identifier when IncludeUser is set) so the limit
// holds across replicas, not just one process.
type Policy struct {
	Name        string
	Max         int64
	Window      time.Duration
	IncludeUser bool

	// SkipSuccessful discounts attempts the handler accepts, so only failed
	// attempts count toward Max.
	SkipSuccessful bool
}

var (
	SigninPolicy  = Policy{Name: "signin", Max: 5, Window: 15 * time.Minute, IncludeUser: true, SkipSuccessful: true}
	SignupPolicy  = Policy{Name: "signup", Max: 3, Window: time.Hour, SkipSuccessful: true}
	GeneralPolicy = Policy{Name: "api", Max: 100, Window: 15 * time.Minute}
)

type RateLimiter struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewRateLimiter(rdb *redis.Client, log *slog.Logger) *RateLimiter {
	return &RateLimiter{
		rdb: rdb,
		log: log,
	}
}

func (rl *RateLimiter) Limit(p Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := rl.key(c, p)

			count, err := rl.rdb.Incr(ctx, key).Result()
			if err != nil {
				// counter store down: let the request through rather than
				// turning a Redis outage into an API outage
				rl.log.Warn("rate limiter unavailable, allowing request",
					slog.String("policy", p.Name),
					slog.Any("error", err))
				return next(c)
			}

			if count == 1 {
				if err := rl.rdb.Expire(ctx, key, p.Window).Err(); err != nil {
					// a counter without a TTL never resets and would lock the
					// client out permanently; drop it and let the request pass
					rl.log.Warn("rate limiter could not set window TTL, allowing request",
						slog.String("policy", p.Name),
						slog.Any("error", err))
					rl.rdb.Del(ctx, key)
					return next(c)
				}
			}

			if count > p.Max {
				metrics.RateLimited.Inc()
				windowMinutes := int(p.Window.Minutes())
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "Too many attempts",
					"message": fmt.Sprintf(
						"Too many %s attempts. Maximum %d attempts allowed per %d minutes. Please try again later.",
						p.Name, p.Max, windowMinutes),
					"retryAfter": p.Window.Milliseconds(),
					"type":       "RATE_LIMIT_EXCEEDED",
				})
			}

			if !p.SkipSuccessful {
				return next(c)
			}

			err = next(c)
			if err == nil && c.Response().Status < http.StatusBadRequest {
				if derr := rl.rdb.Decr(ctx, key).Err(); derr != nil {
					rl.log.Warn("rate limiter could not discount successful attempt",
						slog.String("policy", p.Name),
						slog.Any("error", derr))
				}
			}
			return err
		}
	}
}

func (rl *RateLimiter) key(c echo.Context, p Policy) string {
	key := "ratelimit:" + p.Name + ":" + c.RealIP()

	if p.IncludeUser {
		if email := peekEmail(c); email != "" {
			// hashed for privacy, same as the key the limit is enforced on
			sum := sha256.Sum256([]byte(email))
			key += ":" + hex.EncodeToString(sum[:])[:16]
		}
	}
	return key
}

// peekEmail reads the account identifier from the body without consuming it.
func peekEmail(c echo.Context) string {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return ""
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Email
}
