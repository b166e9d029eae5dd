package controllers

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/models"
)

const flashCookie = "flash"

// currentUser returns the authenticated user placed in the context by the
// auth middleware, or nil.
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// resolveActor picks the actor attribution for incident events: explicit
// field first, then the authenticated user's name, then "System".
func resolveActor(c *gin.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if user := currentUser(c); user != nil && user.Name != "" {
		return user.Name
	}
	return "System"
}

// setFlash stores a one-shot status message for the next page render.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(message), 60, "/", "", false, true)
}

// takeFlash reads and clears the flash message.
func takeFlash(c *gin.Context) string {
	value, err := c.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	message, err := url.QueryUnescape(value)
	if err != nil {
		return ""
	}
	return message
}
