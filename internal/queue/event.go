// Package queue defines message payloads exchanged over the message broker.
package queue

// LayoutSavedEvent is published after a layout document is successfully
// saved.  Downstream ticketing consumes the seat identifiers to provision
// purchasable seats without querying the editor's database.
type LayoutSavedEvent struct {
    LayoutID   uint64   `json:"layout_id"`
    OwnerID    uint64   `json:"owner_id"`
    VenueID    uint64   `json:"venue_id"`
    Name       string   `json:"name"`
    FloorCount int      `json:"floor_count"`
    SeatIDs    []string `json:"seat_ids"`
    SavedAt    string   `json:"saved_at"`
}
