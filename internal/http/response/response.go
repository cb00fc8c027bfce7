package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/typeset-backend/internal/errdefs"
)

// RespondError maps a typed error to its HTTP status and the standard
// envelope. Untyped errors surface as SYS001 with a generic message.
func RespondError(c *gin.Context, err error) {
	c.JSON(errdefs.HTTPStatus(err), errdefs.NewEnvelope(err))
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondAccepted(c *gin.Context, payload any) {
	c.JSON(http.StatusAccepted, payload)
}

// RespondArtifact streams binary output with an attachment disposition.
func RespondArtifact(c *gin.Context, contentType, filename string, payload []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
