package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/interior-consult/middlewares"
	"github.com/yeremiapane/interior-consult/services"
	"github.com/yeremiapane/interior-consult/utils"
)

type EstimateController struct {
	Service *services.EstimateService
}

func NewEstimateController(service *services.EstimateService) *EstimateController {
	return &EstimateController{Service: service}
}

func (ec *EstimateController) GetAllEstimates(c *gin.Context) {
	estimates, err := ec.Service.List(c.Request.Context(), middlewares.Identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, estimates)
}

func (ec *EstimateController) GetEstimateByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	estimate, err := ec.Service.Get(c.Request.Context(), middlewares.Identity(c), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, services.NewEstimateView(*estimate))
}

func (ec *EstimateController) CreateEstimate(c *gin.Context) {
	var input services.EstimateInput
	if err := bindJSON(c, &input); err != nil {
		utils.RespondError(c, err)
		return
	}

	estimate, err := ec.Service.Create(c.Request.Context(), middlewares.Identity(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, services.NewEstimateView(*estimate))
}

func (ec *EstimateController) UpdateEstimate(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var input services.EstimateInput
	if err := bindJSON(c, &input); err != nil {
		utils.RespondError(c, err)
		return
	}

	estimate, err := ec.Service.Update(c.Request.Context(), middlewares.Identity(c), id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, services.NewEstimateView(*estimate))
}

func (ec *EstimateController) DeleteEstimate(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := ec.Service.Delete(c.Request.Context(), middlewares.Identity(c), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}

func (ec *EstimateController) ExportEstimate(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	estimate, err := ec.Service.Get(c.Request.Context(), middlewares.Identity(c), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	data, err := services.ExportEstimate(*estimate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="estimate-%d.xlsx"`, estimate.ID))
	c.Data(http.StatusOK, services.XLSXContentType, data)
}
