package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/venuekit/seatmap-designer/internal/config"
)

// captureWriter captures the response body while forwarding to the client.
// Capture stops at limit bytes; oversized responses are served but not cached.
type captureWriter struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    size     int64
    limit    int64
    overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    cw.size += int64(len(b))
    if cw.limit > 0 && cw.size > cw.limit {
        cw.overflow = true
    } else {
        cw.buf.Write(b)
    }
    return cw.ResponseWriter.Write(b)
}

// cachedResponse is the stored form of one cacheable response.
type cachedResponse struct {
    Status      int    `json:"status"`
    ContentType string `json:"contentType"`
    Body        []byte `json:"body"`
}

// cacheKey builds the Redis key for a request.  Responses behind this
// middleware are owner-scoped, so the authenticated user id is part of the
// key along with the concrete URL path (never the route pattern, which would
// collide across path parameters).
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    raw := strings.Join([]string{
        fmt.Sprintf("%v", c.Get("user_id")),
        r.Method,
        r.URL.Path,
        r.URL.RawQuery,
    }, ":")
    sum := sha1.Sum([]byte(raw))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum)
}

// NewRedisCache returns a response-cache middleware backed by Redis.  A nil
// client or a disabled config yields a pass-through middleware, so callers
// can wire it unconditionally.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg, c)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var cached cachedResponse
                if json.Unmarshal(bs, &cached) == nil && cached.Status != 0 {
                    if cached.ContentType != "" {
                        c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(cached.Status)
                    _, _ = c.Response().Write(cached.Body)
                    return nil
                }
            }

            cw := &captureWriter{
                ResponseWriter: c.Response().Writer,
                status:         http.StatusOK,
                limit:          int64(cfg.MaxBodyBytes),
            }
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            // Only successful, size-bounded responses are cached.  Errors and
            // oversized bodies always go back to the handler next time.
            if cw.status == http.StatusOK && !cw.overflow {
                payload, err := json.Marshal(cachedResponse{
                    Status:      cw.status,
                    ContentType: c.Response().Header().Get(echo.HeaderContentType),
                    Body:        cw.buf.Bytes(),
                })
                if err == nil {
                    _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
                }
            }
            return nil
        }
    }
}
