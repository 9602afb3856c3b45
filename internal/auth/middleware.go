package auth

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/locksetdev/vault/internal/errors"
	"github.com/locksetdev/vault/internal/httputil"
)

// maxBodySize bounds the request body read for signature verification.
const maxBodySize = 256 * 1024

// SignatureMiddleware returns a Gin middleware that rejects requests without
// a valid ECDSA signature.
//
// Expected headers: X-Signature (hex r || s) and X-Timestamp (Unix
// milliseconds). GET and DELETE requests are signed over an empty body.
func SignatureMiddleware(verifier *Verifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader("X-Signature")
		timestamp := c.GetHeader("X-Timestamp")
		if signature == "" || timestamp == "" {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		var body []byte
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodDelete {
			var err error
			body, err = io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
			if err != nil {
				httputil.HandleBadRequestGin(c, err, logger)
				c.Abort()
				return
			}
			if len(body) > maxBodySize {
				httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "request body too large"), logger)
				c.Abort()
				return
			}

			// Handlers read the body after us.
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		if err := verifier.Verify(timestamp, c.Request.URL.Path, body, signature); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
