package domain

import (
	"fmt"
	"time"
)

// Roles a marketplace account can hold. Advertisers create ads, showers
// register webhook endpoints and earn from deliveries and clicks, admins
// approve content and adjust balances.
const (
	RoleAdvertiser = "advertiser"
	RoleShower     = "shower"
	RoleAdmin      = "admin"
)

// User is a marketplace account. Balance is a fixed-point integer in 1e-8
// currency units and is only ever moved by atomic increments in the store.
type User struct {
	ID        string
	Username  string
	Role      string
	Balance   int64
	CreatedAt time.Time
}

// FormatAmount renders a fixed-point 1e-8 amount as a decimal string with
// eight fractional digits, e.g. 250000 -> "0.00250000".
func FormatAmount(units int64) string {
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return fmt.Sprintf("%s%d.%08d", sign, units/100000000, units%100000000)
}
