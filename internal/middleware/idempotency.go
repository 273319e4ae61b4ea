package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// IdempotencyKeyHeader carries the client chosen key on POST payment and refund calls.
const IdempotencyKeyHeader = "Idempotency-Key"

const pendingMarker = "pending"

// releaseTimeout bounds the redis writes made after the handler returns.
const releaseTimeout = 2 * time.Second

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyRedisKey scopes a client key to the caller and the request path.
func IdempotencyRedisKey(userID, path, key string) string {
	if userID == "" {
		userID = "anonymous"
	}
	return fmt.Sprintf("idempotency:%s:%s:%s", userID, path, key)
}

// Idempotency replays the first successful response for a repeated Idempotency-Key
// and rejects a duplicate that arrives while the first is still running.
// A nil client disables the middleware. Redis failures fall through to the handler.
func Idempotency(client *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if client == nil || key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx).With(slog.String("idempotency_key", key))
		userID, _ := GetUserIDFromContext(c)
		redisKey := IdempotencyRedisKey(userID, c.Request.URL.Path, key)

		acquired, err := client.SetNX(ctx, redisKey, pendingMarker, ttl).Result()
		if err != nil {
			logger.Warn("Idempotency store unavailable, processing without it", slog.String("error", err.Error()))
			c.Next()
			return
		}

		if !acquired {
			raw, err := client.Get(ctx, redisKey).Result()
			if err != nil {
				logger.Warn("Failed to read idempotency record", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "request with this Idempotency-Key could not be verified, retry later"})
				return
			}
			if raw == pendingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "request with this Idempotency-Key is already in progress"})
				return
			}
			var stored storedResponse
			if err := json.Unmarshal([]byte(raw), &stored); err != nil {
				logger.Error("Corrupt idempotency record", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			logger.Info("Replaying idempotent response", slog.Int("status", stored.Status))
			c.Header("Idempotent-Replayed", "true")
			c.Data(stored.Status, stored.ContentType, []byte(stored.Body))
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		// Redis writes after the handler must survive a client disconnect.
		storeCtx := context.WithoutCancel(ctx)
		stored := false
		defer func() {
			if stored {
				return
			}
			// Failed or panicking attempts are not remembered so the client may retry with the same key.
			releaseCtx, cancel := context.WithTimeout(storeCtx, releaseTimeout)
			defer cancel()
			if err := client.Del(releaseCtx, redisKey).Err(); err != nil {
				logger.Warn("Failed to release idempotency key", slog.String("error", err.Error()))
			}
		}()

		c.Next()

		status := writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		record, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.String(),
		})
		if err != nil {
			logger.Error("Failed to encode idempotency record", slog.String("error", err.Error()))
			return
		}
		setCtx, cancel := context.WithTimeout(storeCtx, releaseTimeout)
		defer cancel()
		if err := client.Set(setCtx, redisKey, record, ttl).Err(); err != nil {
			logger.Warn("Failed to store idempotency record", slog.String("error", err.Error()))
			return
		}
		stored = true
	}
}
