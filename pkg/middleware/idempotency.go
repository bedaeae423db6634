package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medtransit/fare-engine/pkg/common"
	"github.com/medtransit/fare-engine/pkg/logger"
	redisclient "github.com/medtransit/fare-engine/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour

	// reservationTTL bounds how long a crashed in-flight request can block
	// retries carrying the same key.
	reservationTTL = 30 * time.Second

	// inFlightMarker reserves a key while its first request is still
	// executing.
	inFlightMarker = "in-flight"
)

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
}

// responseRecorder wraps gin.ResponseWriter to capture the response body.
type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key
// instead of re-executing the handler. The key is reserved with SETNX before
// the handler runs, so two concurrent requests carrying the same key cannot
// both execute: the loser is answered 409 while the winner is in flight, and
// served the cached response afterwards. Redemption is not idempotent by
// nature, so callers retrying after an ambiguous failure must reuse their key
// to avoid double-counting a use.
func Idempotency(client *redisclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := "idempotency:" + key

		if data, err := client.GetString(ctx, cacheKey); err == nil {
			if replayIdempotent(c, data) {
				return
			}
		}

		claimed, err := client.SetIfNotExists(ctx, cacheKey, inFlightMarker, reservationTTL)
		if err != nil {
			logger.WithContext(ctx).Warn("failed to reserve idempotency key")
			c.Next()
			return
		}
		if !claimed {
			// Lost the reservation race. The winner's result may already
			// have landed between our read and the SETNX.
			if data, err := client.GetString(ctx, cacheKey); err == nil {
				if replayIdempotent(c, data) {
					return
				}
			}
			rejectInFlight(c)
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		// Server errors release the reservation so the client can retry.
		status := recorder.Status()
		if status >= http.StatusInternalServerError {
			if err := client.Delete(ctx, cacheKey); err != nil {
				logger.WithContext(ctx).Warn("failed to release idempotency key")
			}
			return
		}

		payload, err := json.Marshal(cachedResponse{StatusCode: status, Body: recorder.body.Bytes()})
		if err != nil {
			if err := client.Delete(ctx, cacheKey); err != nil {
				logger.WithContext(ctx).Warn("failed to release idempotency key")
			}
			return
		}
		if err := client.SetWithExpiration(ctx, cacheKey, payload, idempotencyTTL); err != nil {
			logger.WithContext(ctx).Warn("failed to cache idempotent response")
		}
	}
}

// replayIdempotent answers the request from a stored key state. Returns false
// when the stored value is unusable and the handler should run.
func replayIdempotent(c *gin.Context, data string) bool {
	if data == inFlightMarker {
		rejectInFlight(c)
		return true
	}

	var cached cachedResponse
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return false
	}

	c.Data(cached.StatusCode, "application/json", cached.Body)
	c.Abort()
	return true
}

func rejectInFlight(c *gin.Context) {
	common.ErrorResponse(c, http.StatusConflict, "a request with this idempotency key is already in progress")
	c.Abort()
}
