package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxRequestBody caps the size of a decoded request payload.
const MaxRequestBody = 1 << 20

// DecompressRequest decodes gzip request bodies and caps the decoded size.
// Plain bodies are capped too, so handlers see the same limit either way.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		body := c.Request.Body
		if body == nil || body == http.NoBody {
			c.Next()
			return
		}
		defer body.Close()

		if strings.Contains(strings.ToLower(c.GetHeader("Content-Encoding")), "gzip") {
			zr, err := gzip.NewReader(body)
			if err != nil {
				abort(c, http.StatusBadRequest, "validation_error", "malformed gzip body")
				return
			}
			defer zr.Close()

			c.Request.Body = http.MaxBytesReader(c.Writer, zr, MaxRequestBody)
			c.Request.Header.Del("Content-Encoding")
			c.Request.ContentLength = -1
		} else {
			c.Request.Body = http.MaxBytesReader(c.Writer, body, MaxRequestBody)
		}

		c.Next()
	}
}
