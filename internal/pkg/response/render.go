package response

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/flash"
)

// Document is the envelope every page is rendered with.
// HTML templates read it as {{.Data}}, JSON clients receive it verbatim.
type Document struct {
	Username string          `json:"username,omitempty"`
	Messages []flash.Message `json:"messages"`
	Data     any             `json:"data"`
}

// Render emits a page as HTML (template name) or JSON, depending on the Accept header.
func Render(c *gin.Context, status int, template string, data any) {
	messages := flash.Pop(c)
	if messages == nil {
		messages = make([]flash.Message, 0)
	}

	doc := Document{
		Username: auth.GetUsername(c),
		Messages: messages,
		Data:     data,
	}

	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: template,
		HTMLData: doc,
		JSONData: doc,
	})
}
