package entity

import "time"

// User is a dealership staff account. The denormalized profile, dealership
// and province snapshots mirror what the identity endpoints return, so
// clients never need a second round-trip to render the session.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string

	Profile    *ProfileInfo
	ManagerID  string
	Dealership *DealershipInfo
	Province   *ProvinceInfo

	ChatEnabled bool
	Active      bool

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName returns the display name, falling back to the username.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// ProfileInfo is the role snapshot attached to a user.
type ProfileInfo struct {
	ID   string
	Code string
	Name string
}

// DealershipInfo is the dealership snapshot attached to a user.
type DealershipInfo struct {
	ID       string
	Name     string
	Address  string
	Phone    string
	Email    string
	Province string
	Active   bool
}

// ProvinceInfo is the province snapshot attached to a user.
type ProvinceInfo struct {
	ID   string
	Code string
	Name string
}
