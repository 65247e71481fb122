package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/souqsyria/backend/internal/apperrors"
)

var environment = "production"

// SetEnvironment controls whether error responses carry debug detail.
// Outside production the envelope includes the underlying cause and a
// stack trace.
func SetEnvironment(env string) {
	environment = env
}

// RespondError renders an error as the bilingual API envelope. Known
// APIErrors keep their status and messages; anything else becomes a
// generic 500 and the underlying cause is only logged.
func RespondError(c *gin.Context, err error) {
	apiErr, ok := apperrors.AsAPIError(err)
	if !ok {
		log.Printf("internal error (request %s): %v", RequestIDFromContext(c), err)
		apiErr = apperrors.Internal()
	}

	body := gin.H{
		"error":      apiErr.Message,
		"error_ar":   apiErr.MessageAr,
		"code":       apiErr.Code,
		"request_id": RequestIDFromContext(c),
	}
	if environment != "production" {
		body["debug"] = gin.H{
			"cause": err.Error(),
			"stack": string(debug.Stack()),
		}
	}

	c.JSON(apiErr.Status, body)
}

// RespondValidationError renders a 400 for malformed request bodies
func RespondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "Invalid request: " + err.Error(),
		"error_ar":   "طلب غير صالح",
		"code":       "BAD_REQUEST",
		"request_id": RequestIDFromContext(c),
	})
}
