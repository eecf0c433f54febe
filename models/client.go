package models

// ClientType categorizes a roster entry. Values match the stored documents.
type ClientType string

const (
	ClientTypeHomme  ClientType = "homme"
	ClientTypeFemme  ClientType = "femme"
	ClientTypeEnfant ClientType = "enfant"
)

// Valid reports whether t is one of the known client types.
func (t ClientType) Valid() bool {
	switch t {
	case ClientTypeHomme, ClientTypeFemme, ClientTypeEnfant:
		return true
	}
	return false
}

// Client is one roster entry, owned by a single user account.
//
// LastVisit is derived: it always holds the greatest ISO date among the
// client's services and is never set directly by a caller. Dates and
// timestamps are stored as strings (YYYY-MM-DD and RFC3339) so ordering is
// plain string comparison.
type Client struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Name       string     `json:"name"`
	Type       ClientType `json:"type"`
	Notes      string     `json:"notes,omitempty"`
	LastVisit  string     `json:"lastVisit"`
	IsFavorite bool       `json:"isFavorite"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
}
