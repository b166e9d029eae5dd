package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/models"
	"github.com/mediahaus/taskhaus/internal/services"
)

const dashboardPath = "/incident-command"

type IncidentController struct {
	incidents *services.IncidentService
}

func NewIncidentController(incidents *services.IncidentService) *IncidentController {
	return &IncidentController{incidents: incidents}
}

type CreateIncidentRequest struct {
	Title           string   `form:"title" binding:"required,max=255"`
	System          string   `form:"system" binding:"required,max=255"`
	Severity        string   `form:"severity" binding:"required,oneof=SEV1 SEV2 SEV3"`
	Summary         string   `form:"summary"`
	ImpactedUsers   string   `form:"impacted_users" binding:"max=255"`
	ImpactedRegions []string `form:"impacted_regions"`
	Tags            []string `form:"tags"`
	Actor           string   `form:"actor" binding:"max=255"`
}

type UpdateIncidentStatusRequest struct {
	Status      string `form:"status" binding:"required,oneof=investigating mitigating monitoring resolved"`
	StatusActor string `form:"status_actor" binding:"max=255"`
	StatusNote  string `form:"status_note"`
}

// Dashboard renders the incident command page.
func (ic *IncidentController) Dashboard(c *gin.Context) {
	incidents, err := ic.incidents.Dashboard()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load incidents")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"incidents": incidents,
		"flash":     takeFlash(c),
	})
}

// Index returns the same projection as JSON for API consumers.
func (ic *IncidentController) Index(c *gin.Context) {
	incidents, err := ic.incidents.Dashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load incidents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"incidents": incidents,
	})
}

func (ic *IncidentController) Store(c *gin.Context) {
	var req CreateIncidentRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "Could not create incident: "+err.Error())
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	actor := resolveActor(c, req.Actor)

	_, err := ic.incidents.Create(actor, services.CreateIncidentInput{
		Title:           req.Title,
		System:          req.System,
		Severity:        models.IncidentSeverity(req.Severity),
		Summary:         req.Summary,
		ImpactedUsers:   req.ImpactedUsers,
		ImpactedRegions: req.ImpactedRegions,
		Tags:            req.Tags,
	})
	if err != nil {
		setFlash(c, "Could not create incident.")
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	setFlash(c, "Incident created.")
	c.Redirect(http.StatusFound, dashboardPath)
}

func (ic *IncidentController) Update(c *gin.Context) {
	incidentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Incident not found")
		return
	}

	var req UpdateIncidentStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "Could not update incident: "+err.Error())
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	actor := resolveActor(c, req.StatusActor)

	_, err = ic.incidents.UpdateStatus(uint(incidentID), models.IncidentStatus(req.Status), actor, req.StatusNote)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Incident not found")
			return
		}
		setFlash(c, "Could not update incident.")
		c.Redirect(http.StatusFound, dashboardPath)
		return
	}

	setFlash(c, "Incident updated")
	c.Redirect(http.StatusFound, dashboardPath)
}
