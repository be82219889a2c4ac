package viewcache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// responseCapture duplicates the response body so a cache entry can be
// written after the handler runs.
type responseCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheView serves GET responses for a view from the cache and stores
// misses with the given TTL. Query parameters produce distinct entries
// under the same view prefix.
func CacheView(cache *Cache, view string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		// url.Values.Encode sorts keys, so parameter order does not
		// split the cache.
		key := Key(view, c.Request.URL.Query().Encode())

		if payload, ok := cache.get(c.Request.Context(), view, key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			c.Abort()
			return
		}

		capture := &responseCapture{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capture

		c.Next()

		if capture.Status() == http.StatusOK && capture.body.Len() > 0 {
			cache.set(c.Request.Context(), view, key, capture.body.Bytes(), ttl)
		}
	}
}
