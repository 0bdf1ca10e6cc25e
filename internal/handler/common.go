package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/venuekit/seatmap-designer/internal/repository" // repository holds data access layer
    "github.com/labstack/echo/v4"                              // echo defines request context types
)

// EditorHandler bundles the repositories the layout editor endpoints need.
type EditorHandler struct {
    LayoutRepo *repository.LayoutRepo // LayoutRepo provides layout persistence
    VenueRepo  *repository.VenueRepo  // VenueRepo provides venue lookups
    GridSize   float64                // default grid cell size for server-side relabeling
}

// NewEditorHandler constructs a new EditorHandler and panics if any dependency is nil
func NewEditorHandler(layoutRepo *repository.LayoutRepo, venueRepo *repository.VenueRepo, gridSize float64) *EditorHandler {
    if layoutRepo == nil || venueRepo == nil {
        panic("nil repository passed to NewEditorHandler")
    }
    if gridSize <= 0 {
        gridSize = 10
    }
    return &EditorHandler{
        LayoutRepo: layoutRepo,
        VenueRepo:  venueRepo,
        GridSize:   gridSize,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id") // fetch user_id from context, set by the JWT middleware
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}
