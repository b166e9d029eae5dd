package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/models"
	"github.com/mediahaus/taskhaus/internal/services"
)

type FollowUpController struct {
	incidents *services.IncidentService
}

func NewFollowUpController(incidents *services.IncidentService) *FollowUpController {
	return &FollowUpController{incidents: incidents}
}

type CreateFollowUpRequest struct {
	Label string `form:"label" binding:"required,max=255"`
	Owner string `form:"owner" binding:"max=255"`
}

type UpdateFollowUpRequest struct {
	Status string `form:"status" binding:"required,oneof=open in_progress done"`
}

func (fc *FollowUpController) Store(c *gin.Context) {
	incidentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Incident not found")
		return
	}

	var req CreateFollowUpRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "Could not create follow up: "+err.Error())
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	actor := resolveActor(c, "")

	_, err = fc.incidents.CreateFollowUp(uint(incidentID), req.Label, req.Owner, actor)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Incident not found")
			return
		}
		setFlash(c, "Could not create follow up.")
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	setFlash(c, "Follow up created.")
	c.Redirect(http.StatusFound, dashboardPath)
}

func (fc *FollowUpController) Update(c *gin.Context) {
	followUpID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Follow up not found")
		return
	}

	var req UpdateFollowUpRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "Could not update follow up: "+err.Error())
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	actor := resolveActor(c, "")

	_, err = fc.incidents.UpdateFollowUpStatus(uint(followUpID), models.FollowUpStatus(req.Status), actor)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Follow up not found")
			return
		}
		setFlash(c, "Could not update follow up.")
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	setFlash(c, "Follow up updated.")
	c.Redirect(http.StatusFound, dashboardPath)
}
