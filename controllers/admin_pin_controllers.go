package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/interior-consult/middlewares"
	"github.com/yeremiapane/interior-consult/services"
	"github.com/yeremiapane/interior-consult/utils"
)

type AdminPinController struct {
	Service *services.AdminPinService
}

func NewAdminPinController(service *services.AdminPinService) *AdminPinController {
	return &AdminPinController{Service: service}
}

// GetStatus tells the client whether the next entry sets or verifies the PIN.
func (ac *AdminPinController) GetStatus(c *gin.Context) {
	hasPin, err := ac.Service.HasPin(c.Request.Context(), middlewares.Identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"hasPin": hasPin})
}

func (ac *AdminPinController) Submit(c *gin.Context) {
	var body struct {
		Pin string `json:"pin"`
	}
	if err := bindJSON(c, &body); err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := ac.Service.Submit(c.Request.Context(), middlewares.Identity(c), body.Pin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result)
}

func (ac *AdminPinController) Change(c *gin.Context) {
	var body struct {
		CurrentPin string `json:"currentPin"`
		NewPin     string `json:"newPin"`
		ConfirmPin string `json:"confirmPin"`
	}
	if err := bindJSON(c, &body); err != nil {
		utils.RespondError(c, err)
		return
	}

	err := ac.Service.Change(c.Request.Context(), middlewares.Identity(c), body.CurrentPin, body.NewPin, body.ConfirmPin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "비밀번호가 변경되었습니다.")
}
