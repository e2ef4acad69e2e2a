package domain

import "time"

// User represents a registered account in the system.
type User struct {
	ID        string
	Name      string
	Username  string
	Email     string
	Password  string // stored credential; comparison strategy lives outside the core
	Phone     string
	CreatedAt time.Time
}

// UserRides holds a user's ride involvements, derived from carpool membership.
// These are query-only back-references; the carpool owns the actual sets.
type UserRides struct {
	Hosted    []*Carpool // rides where the user is the driver
	Confirmed []*Carpool // rides joined as a confirmed passenger
	Pending   []*Carpool // rides requested but not yet accepted
}
