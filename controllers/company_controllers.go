package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/interior-consult/middlewares"
	"github.com/yeremiapane/interior-consult/services"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
)

type CompanyController struct {
	Service *services.CompanyService
	Codec   *session.CookieCodec
}

func NewCompanyController(service *services.CompanyService, codec *session.CookieCodec) *CompanyController {
	return &CompanyController{Service: service, Codec: codec}
}

// Login checks code/password and sets the company cookie.
func (cc *CompanyController) Login(c *gin.Context) {
	var input struct {
		Code     string `json:"code"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &input); err != nil {
		utils.RespondError(c, err)
		return
	}

	id, err := cc.Service.Authenticate(c.Request.Context(), input.Code, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	cookie, err := cc.Codec.Cookie(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	http.SetCookie(c.Writer, cookie)

	utils.InfoLogger.Printf("Company login: %s (id=%d)", id.Code, id.CompanyID)
	utils.RespondJSON(c, http.StatusOK, id)
}

func (cc *CompanyController) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, cc.Codec.ExpiredCookie())
	utils.RespondMessage(c, http.StatusOK, "로그아웃되었습니다.")
}

// Me returns the resolved company identity.
func (cc *CompanyController) Me(c *gin.Context) {
	id := middlewares.Identity(c)
	if !id.Valid() {
		utils.RespondError(c, utils.ErrLoginRequired)
		return
	}
	utils.RespondJSON(c, http.StatusOK, id)
}
