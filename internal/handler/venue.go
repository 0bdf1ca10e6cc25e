package handler // handler package contains the venue header lookup

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/venuekit/seatmap-designer/internal/repository"
)

// GetVenue handles GET /v1/venues/:id.  It returns the venue name and
// address shown in the editor header.  The route sits behind the Redis
// response cache since venue metadata changes rarely and this is read-only.
func (h *EditorHandler) GetVenue(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	v, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, v)
}
