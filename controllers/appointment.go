package controllers

import (
	"net/http"

	"glowbook-backend/repository"
	"glowbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// CollaboratorController serves the read-only collections the dashboard
// consumes alongside leads. Appointments, sales, invoices and contracts are
// written by other systems; this backend only reads them.
type CollaboratorController struct {
	Repo repository.LeadRepository
}

func NewCollaboratorController(repo repository.LeadRepository) *CollaboratorController {
	return &CollaboratorController{Repo: repo}
}

// GetAppointments lists appointments ordered by start time
func (cc *CollaboratorController) GetAppointments(c *gin.Context) {
	rows, err := cc.Repo.ListAppointments()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "appointments": rows})
}

// GetSales lists guide and product sales
func (cc *CollaboratorController) GetSales(c *gin.Context) {
	rows, err := cc.Repo.ListSales()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sales": rows})
}
