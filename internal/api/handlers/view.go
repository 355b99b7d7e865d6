package handlers

import (
	"html/template"
	"net/http"

	"github.com/bhandras/rfext/internal/crypto"
	"github.com/bhandras/rfext/internal/logger"
	"github.com/bhandras/rfext/internal/response"
	"github.com/gin-gonic/gin"
)

// ViewVerifier checks the token carried by a view link.
type ViewVerifier interface {
	Verify(token string) (*crypto.ViewClaims, error)
}

var viewPage = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>Hello, RedForester!</h1>
<p>Opened by <code>{{.Command}}</code> on map <code>{{.MapID}}</code> for user <code>{{.UserID}}</code>.</p>
</body>
</html>
`))

type viewData struct {
	Title   string
	Command string
	MapID   string
	UserID  string
}

type ViewHandler struct {
	verifier ViewVerifier
	name     string
}

func NewViewHandler(verifier ViewVerifier, extensionName string) *ViewHandler {
	return &ViewHandler{verifier: verifier, name: extensionName}
}

// GetView handles GET /view?token=...
func (h *ViewHandler) GetView(c *gin.Context) {
	claims, err := h.verifier.Verify(c.Query("token"))
	if err != nil {
		logger.Debugf("Rejected view link: %v", err)
		c.JSON(http.StatusUnauthorized, response.NewFault(http.StatusUnauthorized, "invalid or expired view link", nil))
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := viewPage.Execute(c.Writer, viewData{
		Title:   h.name,
		Command: claims.Command,
		MapID:   claims.MapID,
		UserID:  claims.UserID,
	}); err != nil {
		logger.Errorf("Failed to render view page: %v", err)
	}
}
