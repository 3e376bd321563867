package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/interior-consult/utils"
)

var (
	errInvalidID   = utils.NewValidationError("잘못된 ID")
	errInvalidBody = utils.NewValidationError("요청 형식이 올바르지 않습니다.")
)

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return &utils.AppError{Kind: utils.KindValidation, Message: errInvalidBody.Message, Err: err}
	}
	return nil
}
