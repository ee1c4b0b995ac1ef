package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/enrollhub/internal/app/models/dto"
)

// parseIDParam reads an integer path parameter. On failure it writes the 400
// response itself and returns ok=false. Zero and negative values parse fine
// and fall through to the lookup, which answers with its own 404.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid id"))
		return 0, false
	}
	return id, true
}
