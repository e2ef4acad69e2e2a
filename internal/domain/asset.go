package domain

import "time"

// Asset represents an uploaded binary blob (typically a profile or vehicle
// photo) stored by the asset collaborator and served back by URL.
type Asset struct {
	ID          string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
