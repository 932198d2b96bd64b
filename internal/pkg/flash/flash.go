// Package flash carries one-shot user messages across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const (
	cookieName = "messages"
	pendingKey = "flash.pending"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message is a single flash message.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

func Info(c *gin.Context, text string)    { add(c, LevelInfo, text) }
func Success(c *gin.Context, text string) { add(c, LevelSuccess, text) }
func Error(c *gin.Context, text string)   { add(c, LevelError, text) }

// add queues a message for the next rendered page.
// Messages not shown yet, including those carried in by the request, are kept.
func add(c *gin.Context, level Level, text string) {
	pending := append(unread(c), Message{Level: level, Text: text})
	c.Set(pendingKey, pending)

	raw, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(raw), 0, "/", "", false, true)
}

// unread returns the messages of the request cookie plus the ones queued since,
// or nothing once Pop has run.
func unread(c *gin.Context) []Message {
	if v, ok := c.Get(pendingKey); ok {
		if msgs, ok := v.([]Message); ok {
			return msgs
		}
	}
	return fromCookie(c)
}

// Pop returns every unread message and clears the cookie.
// Malformed cookies are dropped silently.
func Pop(c *gin.Context) []Message {
	msgs := unread(c)
	c.Set(pendingKey, []Message{})
	if len(msgs) > 0 {
		c.SetCookie(cookieName, "", -1, "/", "", false, true)
	}
	return msgs
}

func fromCookie(c *gin.Context) []Message {
	value, err := c.Cookie(cookieName)
	if err != nil || value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}
