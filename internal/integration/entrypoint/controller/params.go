package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
	"github.com/epiwatch/backend/internal/integration/entrypoint/middleware"
)

// requireUser returns the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		writeError(ctx, http.StatusUnauthorized, "User not authenticated", string(domainerror.ErrCodeMissingToken))
	}
	return identity.UserID, ok
}

// facilityIDParam parses the :id path segment of facility routes. A malformed
// id cannot name a facility, so it is reported as not found.
func facilityIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		writeError(ctx, http.StatusNotFound, "Facility not found", string(domainerror.ErrCodeFacilityNotFound))
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD value as midnight in loc.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dto.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, domainerror.NewTimelineError(
			domainerror.ErrCodeInvalidDateFormat,
			"Invalid date format, expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}
	return t, nil
}

// queryInt parses an optional integer query parameter; missing means zero.
func queryInt(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
