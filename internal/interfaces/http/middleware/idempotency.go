package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "token-forge.backend/internal/domain/errors"
	"token-forge.backend/internal/interfaces/http/response"
	"token-forge.backend/pkg/logger"
	"token-forge.backend/pkg/redis"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	IdempotencyHitHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour
	// maxFingerprintBody caps the request body hashed for a key; larger bodies skip idempotency.
	maxFingerprintBody = 1 << 20

	processingMarker = "processing"
)

var (
	redisEnabled = redis.Enabled
	redisGet     = redis.Get
	redisSet     = redis.Set
	redisSetNX   = redis.SetNX
	redisDel     = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Stored values are "<marker>:<fingerprint>" while in flight and "<fingerprint>\n<body>" once done.
func processingValue(fingerprint string) string {
	return processingMarker + ":" + fingerprint
}

func completedValue(fingerprint, body string) string {
	return fingerprint + "\n" + body
}

func parseCompleted(val string) (fingerprint, body string) {
	fingerprint, body, _ = strings.Cut(val, "\n")
	return fingerprint, body
}

// fingerprintBody hashes the request body and puts it back for the handler.
// ok is false when the body is too large to fingerprint.
func fingerprintBody(c *gin.Context) (string, bool, error) {
	if c.Request.Body == nil {
		sum := sha256.Sum256(nil)
		return hex.EncodeToString(sum[:]), true, nil
	}

	original := c.Request.Body
	buf, err := io.ReadAll(io.LimitReader(original, maxFingerprintBody+1))
	if err != nil {
		return "", false, err
	}
	if len(buf) > maxFingerprintBody {
		c.Request.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(buf), original), original}
		return "", false, nil
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(buf))

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), true, nil
}

func abortConflict(c *gin.Context) {
	response.Error(c, domainerrors.Conflict("request already in progress"))
	c.Abort()
}

func abortKeyReused(c *gin.Context) {
	response.Error(c, domainerrors.NewAppError(
		http.StatusUnprocessableEntity,
		domainerrors.CodeIdempotencyReuse,
		"idempotency key was already used with a different request body",
		domainerrors.ErrConflict,
	))
	c.Abort()
}

// IdempotencyMiddleware replays the first successful response for a repeated Idempotency-Key.
// Reusing a key with a different body is rejected with 422.
// It is a pass-through when the header is absent or Redis is not configured.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || !redisEnabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		fingerprint, ok, err := fingerprintBody(c)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("failed to read request body"))
			c.Abort()
			return
		}
		if !ok {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s", c.FullPath(), key)

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil && strings.HasPrefix(val, processingMarker+":"):
			if val != processingValue(fingerprint) {
				abortKeyReused(c)
				return
			}
			abortConflict(c)
			return
		case err == nil:
			storedFingerprint, body := parseCompleted(val)
			if storedFingerprint != fingerprint {
				abortKeyReused(c)
				return
			}
			c.Header(IdempotencyHitHeader, "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
			c.Abort()
			return
		case !errors.Is(err, redis.Nil):
			// Redis trouble must not block creation.
			logger.Warn(ctx, "Idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingValue(fingerprint), LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			abortConflict(c)
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			if err := redisSet(ctx, storageKey, completedValue(fingerprint, w.body.String()), RetentionDuration); err != nil {
				logger.Warn(ctx, "Idempotency store failed", zap.Error(err))
			}
			return
		}
		// Failed requests may be retried with the same key.
		_ = redisDel(ctx, storageKey)
	}
}
