package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/interior-consult/middlewares"
	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/services"
	"github.com/yeremiapane/interior-consult/utils"
)

type ConsultationController struct {
	Service *services.ConsultationService
}

func NewConsultationController(service *services.ConsultationService) *ConsultationController {
	return &ConsultationController{Service: service}
}

// GetAllConsultations lists the caller's consultations, newest first.
func (cc *ConsultationController) GetAllConsultations(c *gin.Context) {
	consultations, err := cc.Service.List(c.Request.Context(), middlewares.Identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, consultations)
}

func (cc *ConsultationController) GetConsultationByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	consultation, err := cc.Service.Get(c.Request.Context(), middlewares.Identity(c), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, consultation)
}

func (cc *ConsultationController) CreateConsultation(c *gin.Context) {
	var input services.ConsultationInput
	if err := bindJSON(c, &input); err != nil {
		utils.RespondError(c, err)
		return
	}

	consultation, err := cc.Service.Create(c.Request.Context(), middlewares.Identity(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, consultation)
}

// UpdateConsultation applies a partial patch; omitted or null fields keep
// their stored value.
func (cc *ConsultationController) UpdateConsultation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var input services.ConsultationInput
	if err := bindJSON(c, &input); err != nil {
		utils.RespondError(c, err)
		return
	}

	consultation, err := cc.Service.Update(c.Request.Context(), middlewares.Identity(c), id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, consultation)
}

func (cc *ConsultationController) GetScopeOptions(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, models.DefaultScopeLabels)
}

func (cc *ConsultationController) GetStatuses(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, models.ConsultationStatuses)
}

func (cc *ConsultationController) ExportConsultations(c *gin.Context) {
	consultations, err := cc.Service.List(c.Request.Context(), middlewares.Identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	data, err := services.ExportConsultations(consultations, cc.Service.Location)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("consultations-%s.xlsx", time.Now().In(cc.Service.Location).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, services.XLSXContentType, data)
}
