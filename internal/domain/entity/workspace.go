package entity

import "time"

var (
	DefaultLocations = []string{"Jakarta", "Singapore", "Bangkok"}
	DefaultProducts  = []string{"Apple", "Orange", "Melon"}
	DefaultCustomers = []string{"Elder", "Adult", "Young"}
)

// Workspace sidebar state of one user
type Workspace struct {
	UserID       int64
	Locations    []string
	Products     []string
	Customers    []string
	Selected     string
	LastActivity time.Time
}

// NewWorkspace default lists, first location selected
func NewWorkspace(userID int64) Workspace {
	return Workspace{
		UserID:       userID,
		Locations:    append([]string(nil), DefaultLocations...),
		Products:     append([]string(nil), DefaultProducts...),
		Customers:    append([]string(nil), DefaultCustomers...),
		Selected:     DefaultLocations[0],
		LastActivity: time.Now(),
	}
}

// HasLocation checks the location list
func (w Workspace) HasLocation(name string) bool {
	for _, l := range w.Locations {
		if l == name {
			return true
		}
	}
	return false
}
