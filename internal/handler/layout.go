package handler // handler package contains owner-facing layout endpoints

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuekit/seatmap-designer/internal/geometry"
	"github.com/venuekit/seatmap-designer/internal/layout"
	"github.com/venuekit/seatmap-designer/internal/queue"
	"github.com/venuekit/seatmap-designer/internal/repository"
	queue_publisher "github.com/venuekit/seatmap-designer/internal/service"
)

// layoutResponse is the wire shape for a single layout with its document.
type layoutResponse struct {
	ID       uint64          `json:"id"`
	VenueID  uint64          `json:"venue_id"`
	Name     string          `json:"name"`
	Document layout.Document `json:"document"`
}

// ListLayouts handles GET /v1/layouts and returns the owner's layout summaries.
func (h *EditorHandler) ListLayouts(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	items, err := h.LayoutRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if items == nil {
		items = []repository.LayoutSummary{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count": len(items),
		"items": items,
	})
}

// CreateLayout handles POST /v1/layouts and creates an empty templated
// document for a venue the owner controls.
func (h *EditorHandler) CreateLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	var body struct {
		VenueID uint64 `json:"venue_id"` // required venue identifier
		Name    string `json:"name"`     // required layout name
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if body.VenueID == 0 || name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "venue_id and name are required"})
	}
	if _, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), body.VenueID, ownerID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not verify venue"})
	}

	l := &repository.Layout{
		OwnerID:  ownerID,
		VenueID:  body.VenueID,
		Name:     name,
		Document: templateDocument(name),
	}
	if err := h.LayoutRepo.Create(c.Request().Context(), l); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create layout"})
	}
	return c.JSON(http.StatusCreated, layoutResponse{
		ID:       l.ID,
		VenueID:  l.VenueID,
		Name:     l.Name,
		Document: l.Document,
	})
}

// GetLayout handles GET /v1/layouts/:id.  The stored document is normalized
// before it is returned, so the editor always receives a renderable layout
// even from partial legacy data.
func (h *EditorHandler) GetLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	l, err := h.LayoutRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrLayoutNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	layout.Normalize(&l.Document)
	return c.JSON(http.StatusOK, layoutResponse{
		ID:       l.ID,
		VenueID:  l.VenueID,
		Name:     l.Name,
		Document: l.Document,
	})
}

// SaveLayout handles PUT /v1/layouts/:id and overwrites the full document.
// Sections are a derived projection and are recomputed from seats
// immediately before persisting, regardless of what the client sent.  On
// success a layout.saved event is published for downstream ticketing;
// publish failures are logged inside the publisher and ignored because the
// save itself already succeeded.
func (h *EditorHandler) SaveLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body struct {
		Name     *string         `json:"name"`     // optional rename
		Document layout.Document `json:"document"` // full aggregate
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	cur, err := h.LayoutRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrLayoutNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	name := cur.Name
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		name = strings.TrimSpace(*body.Name)
	}

	doc := body.Document
	layout.Normalize(&doc)
	layout.DeriveSections(&doc)

	if err := h.LayoutRepo.SaveDocument(c.Request().Context(), id, ownerID, name, &doc); err != nil {
		if err == repository.ErrLayoutNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save layout"})
	}

	seatIDs := make([]string, 0, len(doc.Seats))
	for i := range doc.Seats {
		seatIDs = append(seatIDs, doc.Seats[i].ID)
	}
	_ = queue_publisher.PublishLayoutSaved(c.Request().Context(), queue.LayoutSavedEvent{
		LayoutID:   id,
		OwnerID:    ownerID,
		VenueID:    cur.VenueID,
		Name:       name,
		FloorCount: len(doc.Floors),
		SeatIDs:    seatIDs,
		SavedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, layoutResponse{
		ID:       id,
		VenueID:  cur.VenueID,
		Name:     name,
		Document: doc,
	})
}

// AutoLabelLayout handles POST /v1/layouts/:id/autolabel.  It relabels every
// seat on one floor from geometry alone and persists the result, so freely
// dragged seats regain deterministic row/number labels without the operator
// fixing them one by one.
func (h *EditorHandler) AutoLabelLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body struct {
		FloorID string  `json:"floor_id"` // optional; defaults to the first floor
		Grid    float64 `json:"grid"`     // optional row-bucketing grid in world units
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	l, err := h.LayoutRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrLayoutNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	layout.Normalize(&l.Document)

	floorID := body.FloorID
	if floorID == "" && len(l.Document.Floors) > 0 {
		floorID = l.Document.Floors[0].ID
	}
	if floorID != "" && l.Document.FloorByID(floorID) == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown floor"})
	}
	grid := body.Grid
	if grid <= 0 {
		grid = h.GridSize
	}

	layout.AutoLabel(&l.Document, floorID, grid)
	layout.DeriveSections(&l.Document)

	if err := h.LayoutRepo.SaveDocument(c.Request().Context(), id, ownerID, l.Name, &l.Document); err != nil {
		if err == repository.ErrLayoutNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save layout"})
	}
	return c.JSON(http.StatusOK, layoutResponse{
		ID:       l.ID,
		VenueID:  l.VenueID,
		Name:     l.Name,
		Document: l.Document,
	})
}

// DeleteLayout handles DELETE /v1/layouts/:id.
func (h *EditorHandler) DeleteLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.LayoutRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrLayoutNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "layout not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// templateDocument builds the empty document a new layout starts from: one
// default floor and a stage centered above the origin.
func templateDocument(name string) layout.Document {
	doc := layout.Document{
		Name:            name,
		CoordinateSpace: layout.CoordinateSpaceWorld,
		Floors: []layout.Floor{
			{ID: layout.DefaultFloorID, Name: layout.DefaultFloorName, Order: 0},
		},
		Elements:      []layout.Element{},
		Seats:         []layout.Seat{},
		StagePosition: "top",
		Stage: layout.Stage{
			X:      -20 * geometry.UnitsPerFoot / 2,
			Y:      -15 * geometry.UnitsPerFoot,
			Width:  20 * geometry.UnitsPerFoot,
			Height: 8 * geometry.UnitsPerFoot,
			Shape:  "rect",
		},
	}
	layout.DeriveSections(&doc)
	return doc
}
