package dto

import (
	"time"

	"github.com/jmar008/dealaai/internal/domain/entity"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token  string        `json:"token"`
	Expire string        `json:"expire"`
	User   *UserResponse `json:"user"`
}

// ChangePasswordRequest is the change-password payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// UserResponse is the user snapshot returned by the identity endpoints.
type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email,omitempty"`
	FirstName   string  `json:"first_name,omitempty"`
	LastName    string  `json:"last_name,omitempty"`
	FullName    string  `json:"full_name"`
	Phone       string  `json:"phone,omitempty"`
	ManagerID   string  `json:"manager_id,omitempty"`
	ChatEnabled bool    `json:"chat_enabled"`
	Active      bool    `json:"active"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
	CreatedAt   string  `json:"created_at"`

	Profile    *ProfileResponse    `json:"profile,omitempty"`
	Dealership *DealershipResponse `json:"dealership,omitempty"`
	Province   *ProvinceResponse   `json:"province,omitempty"`
}

// ProfileResponse is the role snapshot.
type ProfileResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// DealershipResponse is the dealership snapshot.
type DealershipResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Province string `json:"province,omitempty"`
	Active   bool   `json:"active"`
}

// ProvinceResponse is the province snapshot.
type ProvinceResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// UserListResponse pages staff accounts.
type UserListResponse struct {
	Users      []*UserResponse `json:"users"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ToUserResponse converts entity.User to its wire form.
func ToUserResponse(user *entity.User) *UserResponse {
	resp := &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Phone:       user.Phone,
		ManagerID:   user.ManagerID,
		ChatEnabled: user.ChatEnabled,
		Active:      user.Active,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}

	if user.LastLoginAt != nil {
		lastLogin := user.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &lastLogin
	}
	if user.Profile != nil {
		resp.Profile = &ProfileResponse{
			ID:   user.Profile.ID,
			Code: user.Profile.Code,
			Name: user.Profile.Name,
		}
	}
	if user.Dealership != nil {
		resp.Dealership = &DealershipResponse{
			ID:       user.Dealership.ID,
			Name:     user.Dealership.Name,
			Address:  user.Dealership.Address,
			Phone:    user.Dealership.Phone,
			Email:    user.Dealership.Email,
			Province: user.Dealership.Province,
			Active:   user.Dealership.Active,
		}
	}
	if user.Province != nil {
		resp.Province = &ProvinceResponse{
			ID:   user.Province.ID,
			Code: user.Province.Code,
			Name: user.Province.Name,
		}
	}

	return resp
}

// ToUserListResponse converts a page of users to its wire form.
func ToUserListResponse(users []*entity.User, total, page, pageSize int) *UserListResponse {
	userResponses := make([]*UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(user)
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &UserListResponse{
		Users:      userResponses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
