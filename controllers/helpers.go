package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kudakan/kudakan-api/utils"
	"gorm.io/gorm"
)

// parseIDParam reads a numeric path parameter; zero means malformed.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, utils.NewAppError(utils.KindValidation, "invalid %s", name)
	}
	return uint(id), nil
}

// pagination reads skip/limit query parameters, defaulting to 0/100.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return offset, limit
}

// firstOrNotFound translates gorm's record-not-found into the API's
// NotFound kind, leaving other storage errors alone.
func firstOrNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewAppError(utils.KindNotFound, "%s not found", what)
	}
	return err
}
