package domain

import (
	"sync"
	"time"
)

// User represents an account holder. JSON field names match the records the
// original demo wrote to local storage and must stay stable.
type User struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Password      string       `json:"password"`
	Balance       float64      `json:"balance"`
	TotalInvested float64      `json:"totalInvested"`
	TotalReturns  float64      `json:"totalReturns"`
	Investments   []Investment `json:"investments"`
	JoinDate      time.Time    `json:"joinDate"`
}

// Clone returns a deep copy so callers can hold a snapshot without aliasing
// the registry's investment slice.
func (u User) Clone() User {
	c := u
	c.Investments = make([]Investment, len(u.Investments))
	copy(c.Investments, u.Investments)
	return c
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID derives a unique token from the wall clock in milliseconds, nudged
// forward when two calls land on the same millisecond.
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
