package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lisanhq/lisan/internal/utils"
)

type APIError struct {
	Code   utils.Code `json:"code"`
	Detail string     `json:"detail"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	code := utils.CodeInternal
	var ae *utils.AppError
	if errors.As(err, &ae) {
		code = ae.Code
	}

	c.JSON(status, APIError{Code: code, Detail: utils.Detail(err)})
}
