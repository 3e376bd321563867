package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/interior-consult/middlewares"
	"github.com/yeremiapane/interior-consult/services"
	"github.com/yeremiapane/interior-consult/utils"
)

type PicController struct {
	Service *services.PicService
}

func NewPicController(service *services.PicService) *PicController {
	return &PicController{Service: service}
}

func (pc *PicController) GetAllPics(c *gin.Context) {
	pics, err := pc.Service.List(c.Request.Context(), middlewares.Identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, pics)
}

func (pc *PicController) CreatePic(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := bindJSON(c, &body); err != nil {
		utils.RespondError(c, err)
		return
	}

	pic, err := pc.Service.Create(c.Request.Context(), middlewares.Identity(c), body.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, pic)
}

func (pc *PicController) DeletePic(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := pc.Service.Delete(c.Request.Context(), middlewares.Identity(c), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}
