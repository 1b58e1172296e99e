// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
)

// handleError writes the response for an error returned by a use case.
// Domain errors keep their code; anything else is logged and hidden behind
// a generic 500.
func handleError(ctx *gin.Context, err error) {
	for _, match := range codedErrors {
		if status, body, ok := match(err); ok {
			ctx.JSON(status, body)
			return
		}
	}

	slog.ErrorContext(ctx.Request.Context(), "request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	writeError(ctx, http.StatusInternalServerError, "An internal error occurred", "")
}

type errorMatcher func(error) (int, dto.ErrorResponse, bool)

var codedErrors = []errorMatcher{
	matchCode(authStatus),
	matchCode(facilityStatus),
	matchCode(submissionStatus),
	matchCode(timelineStatus),
	matchCode(func(domainerror.RecordErrorCode) int { return http.StatusBadRequest }),
	matchCode(func(domainerror.NotificationErrorCode) int { return http.StatusServiceUnavailable }),
}

// matchCode recognizes one domain's CodedError and maps its code to a status.
func matchCode[C ~string](status func(C) int) errorMatcher {
	return func(err error) (int, dto.ErrorResponse, bool) {
		var coded *domainerror.CodedError[C]
		if !errors.As(err, &coded) {
			return 0, dto.ErrorResponse{}, false
		}
		return status(coded.Code), dto.ErrorResponse{Error: coded.Message, Code: string(coded.Code)}, true
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeTermsNotAccepted,
		domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeForbidden:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func facilityStatus(code domainerror.FacilityErrorCode) int {
	switch code {
	case domainerror.ErrCodeFacilityCodeExists:
		return http.StatusConflict
	case domainerror.ErrCodeFacilityNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func submissionStatus(code domainerror.SubmissionErrorCode) int {
	switch code {
	case domainerror.ErrCodeSubmissionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSubmissionVersionConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func timelineStatus(code domainerror.TimelineErrorCode) int {
	if code == domainerror.ErrCodeTimelineInternalError {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
