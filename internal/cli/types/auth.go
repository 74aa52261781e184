package types

// APIResponse is the server's response envelope.
type APIResponse[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	Token  string `json:"token"`
	Expire string `json:"expire"`
	User   *User  `json:"user"`
}

// ChangePasswordRequest is the change-password payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// User is the staff account snapshot returned by the server.
type User struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email,omitempty"`
	FirstName   string      `json:"first_name,omitempty"`
	LastName    string      `json:"last_name,omitempty"`
	FullName    string      `json:"full_name"`
	Phone       string      `json:"phone,omitempty"`
	ChatEnabled bool        `json:"chat_enabled"`
	Active      bool        `json:"active"`
	LastLoginAt string      `json:"last_login_at,omitempty"`
	Profile     *Profile    `json:"profile,omitempty"`
	Dealership  *Dealership `json:"dealership,omitempty"`
	Province    *Province   `json:"province,omitempty"`
}

// Profile is the role snapshot.
type Profile struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Dealership is the dealership snapshot.
type Dealership struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Province string `json:"province,omitempty"`
}

// Province is the province snapshot.
type Province struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// UserList is a page of staff accounts.
type UserList struct {
	Users      []User `json:"users"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}
