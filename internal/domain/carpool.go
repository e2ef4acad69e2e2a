package domain

import "time"

// StartTimeLayout is the timestamp format carpool start times are exchanged in.
const StartTimeLayout = "2006-01-02 15:04:05"

// Membership represents a user's relationship to a single carpool.
type Membership string

const (
	MembershipNone      Membership = "NOT_INVOLVED"
	MembershipPending   Membership = "PENDING"
	MembershipConfirmed Membership = "CONFIRMED"
	MembershipDriver    Membership = "DRIVER"
)

// Carpool represents a single scheduled ride with a driver, capacity and roster.
// The carpool exclusively owns its confirmed and pending passenger sets.
type Carpool struct {
	ID            string
	Origin        string
	Destination   string
	MeetingPoint  string
	StartTime     time.Time
	TotalCapacity int // seats including the driver's; always >= 2
	Price         float64
	Vehicle       string
	DriverID      string
	Confirmed     []string // user IDs of confirmed passengers, unique, order-irrelevant
	Pending       []string // user IDs awaiting driver approval, disjoint from Confirmed
	CreatedAt     time.Time
}

// AvailableSeats returns the number of open passenger seats.
// One seat is always reserved for the driver.
func (c *Carpool) AvailableSeats() int {
	return c.TotalCapacity - len(c.Confirmed) - 1
}

// MembershipOf reports the user's current relationship to this carpool.
func (c *Carpool) MembershipOf(userID string) Membership {
	if userID == c.DriverID {
		return MembershipDriver
	}
	for _, id := range c.Confirmed {
		if id == userID {
			return MembershipConfirmed
		}
	}
	for _, id := range c.Pending {
		if id == userID {
			return MembershipPending
		}
	}
	return MembershipNone
}

// IsDriver reports whether the user drives this carpool.
func (c *Carpool) IsDriver(userID string) bool {
	return userID == c.DriverID
}
