package domain

import "time"

// Asset is an office asset record. The pair (Name, Type) is unique.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssetAction names a mutation recorded in the audit trail.
type AssetAction string

const (
	AssetCreated AssetAction = "created"
	AssetUpdated AssetAction = "updated"
	AssetDeleted AssetAction = "deleted"
)

// AssetEvent is an audit record of a single asset mutation.
type AssetEvent struct {
	ID         string
	AssetID    string
	Action     AssetAction
	Actor      string
	Name       string
	Type       string
	Location   string
	OccurredAt time.Time
}
