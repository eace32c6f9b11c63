package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/interfaces/http/response"
	"seller-panel.backend/pkg/logger"
	"seller-panel.backend/pkg/redis"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyMiddleware replays the stored response when a seller repeats a
// request with the same Idempotency-Key. Redis failures let the request through.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		owner := "anonymous"
		if actor, ok := GetActor(c); ok {
			owner = actor.SellerID.String()
		}
		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", owner, c.FullPath(), key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil && val == processingMarker:
			response.Error(c, domainerrors.Conflict("idempotencyKey", "a request with this idempotency key is already in progress"))
			return
		case err == nil:
			var cached cachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil && cached.Status != 0 {
				c.Header(IdempotencyHitHeader, "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
			logger.Warn(ctx, "Discarding unreadable idempotency record", zap.String("key", storageKey))
			if delErr := redisDel(ctx, storageKey); delErr != nil {
				logger.Warn(ctx, "Idempotency store unavailable", zap.Error(delErr))
				c.Next()
				return
			}
		case !errors.Is(err, redis.Nil):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, domainerrors.Conflict("idempotencyKey", "a request with this idempotency key is already in progress"))
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			body := w.body.Bytes()
			if len(body) == 0 {
				body = []byte("null")
			}
			payload, err := json.Marshal(cachedResponse{Status: status, Body: body})
			if err == nil {
				err = redisSet(ctx, storageKey, string(payload), RetentionDuration)
			}
			if err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
				_ = redisDel(ctx, storageKey)
			}
			return
		}
		// failed requests may be retried with the same key
		_ = redisDel(ctx, storageKey)
	}
}
