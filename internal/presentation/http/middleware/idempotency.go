package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
)

// IdempotencyKeyHeader is the HTTP header for idempotency keys
const IdempotencyKeyHeader = "Idempotency-Key"

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key
// instead of running the handler again. A key without a prior response
// runs normally and has its response cached when it succeeds. Keys are
// optional: a flaky network between register and server is the case this
// protects, and only the retrying client knows to send one.
func Idempotency(store repository.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		value, exists := c.Get(SessionKey)
		if !exists {
			c.Next()
			return
		}
		sess, ok := value.(*service.Session)
		if !ok {
			c.Next()
			return
		}
		sessionID := sess.Context().SessionID

		if cached, ok := store.Get(idempotencyKey, sessionID); ok {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(cached.Code, "application/json", cached.Body)
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only successful responses are worth replaying; a failed
		// checkout should be retryable with the same key.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			store.Put(idempotencyKey, sessionID, &repository.CachedResponse{
				Code:     c.Writer.Status(),
				Body:     append([]byte(nil), blw.body.Bytes()...),
				StoredAt: time.Now(),
			})
		}
	}
}
