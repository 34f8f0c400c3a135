// Package controller holds helpers shared by the HTTP controllers.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ParseIDParam reads a positive numeric path parameter. Anything else is
// answered with 404, the same as an unknown route.
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Message: "Not found"})
		return 0, false
	}
	return uint(id), true
}

// HTTPStatus maps a service error to its response status.
func HTTPStatus(err error) int {
	switch service.KindOf(err) {
	case service.KindNotAuthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindMalformed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a dto.ErrorResponse. Internal errors are logged
// and never echoed to the client.
func RespondError(ctx *gin.Context, err error, action string) {
	status := HTTPStatus(err)
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msgf("%s: service error", action)
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	log.Warn().Str("path", ctx.Request.URL.Path).Int("status", status).Msgf("%s: %s", action, svcErr.Msg)
	ctx.JSON(status, dto.ErrorResponse{Message: svcErr.Msg})
}

// RespondStatusError answers the proctoring endpoints, which report failures
// in the body with HTTP 200.
func RespondStatusError(ctx *gin.Context, msg string) {
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: StatusError, Msg: msg})
}

// StatusMessage is the client-facing message of a proctoring failure.
func StatusMessage(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Msg
	}
	return "Internal server error"
}
