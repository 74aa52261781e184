package client

import (
	"context"

	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/jmar008/dealaai/internal/cli/types"
)

// API endpoint paths
const (
	endpointLogin          = "/api/v1/auth/login"
	endpointLogout         = "/api/v1/auth/logout"
	endpointMe             = "/api/v1/users/me"
	endpointChangePassword = "/api/v1/users/change_password"
	endpointUsers          = "/api/v1/users"
	endpointStock          = "/api/v1/stock"
	endpointStockSearch    = "/api/v1/stock/search"
	endpointStockStats     = "/api/v1/stock/stats"
	endpointStockExport    = "/api/v1/stock/export"
	endpointChatMessages   = "/api/v1/chat/messages"
	endpointConversations  = "/api/v1/chat/conversations"
)

// Login authenticates and returns the token with the user snapshot.
func (c *Client) Login(ctx context.Context, username, password string) (*types.LoginData, error) {
	return Do[types.LoginData](ctx, c, consts.MethodPost, endpointLogin, types.LoginRequest{
		Username: username,
		Password: password,
	})
}

// Logout tells the server the session is over.
func (c *Client) Logout(ctx context.Context) error {
	_, err := Do[struct{}](ctx, c, consts.MethodPost, endpointLogout, nil)
	return err
}

// Me returns the profile behind the current token.
func (c *Client) Me(ctx context.Context) (*types.User, error) {
	return Do[types.User](ctx, c, consts.MethodGet, endpointMe, nil)
}

// ChangePassword changes the current user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := Do[struct{}](ctx, c, consts.MethodPost, endpointChangePassword, types.ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	return err
}

// ListUsers returns a page of staff accounts.
func (c *Client) ListUsers(ctx context.Context) (*types.UserList, error) {
	return Do[types.UserList](ctx, c, consts.MethodGet, endpointUsers, nil)
}

// ListStock returns a filtered page of vehicles.
func (c *Client) ListStock(ctx context.Context, query types.StockQuery) (*types.VehicleList, error) {
	path := endpointStock
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return Do[types.VehicleList](ctx, c, consts.MethodGet, path, nil)
}

// GetVehicle returns one vehicle by VIN.
func (c *Client) GetVehicle(ctx context.Context, vin string) (*types.Vehicle, error) {
	return Do[types.Vehicle](ctx, c, consts.MethodGet, endpointStock+"/"+vin, nil)
}

// SearchStock runs a free-text stock search.
func (c *Client) SearchStock(ctx context.Context, query types.StockQuery) (*types.VehicleList, error) {
	path := endpointStockSearch
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return Do[types.VehicleList](ctx, c, consts.MethodGet, path, nil)
}

// StockStats returns aggregate stock figures.
func (c *Client) StockStats(ctx context.Context) (*types.StockStats, error) {
	return Do[types.StockStats](ctx, c, consts.MethodGet, endpointStockStats, nil)
}

// ExportStock downloads the filtered stock as CSV bytes.
func (c *Client) ExportStock(ctx context.Context, query types.StockQuery) ([]byte, error) {
	path := endpointStockExport
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.doRaw(ctx, consts.MethodGet, path, nil, "text/csv")
}

// SendChatMessage sends a message to the assistant.
func (c *Client) SendChatMessage(ctx context.Context, conversationID, message string) (*types.ChatExchange, error) {
	return Do[types.ChatExchange](ctx, c, consts.MethodPost, endpointChatMessages, types.SendMessageRequest{
		ConversationID: conversationID,
		Message:        message,
	})
}

// ListConversations returns the user's conversation summaries.
func (c *Client) ListConversations(ctx context.Context) (*types.ConversationList, error) {
	return Do[types.ConversationList](ctx, c, consts.MethodGet, endpointConversations, nil)
}

// GetConversation returns one conversation with its messages.
func (c *Client) GetConversation(ctx context.Context, id string) (*types.Conversation, error) {
	return Do[types.Conversation](ctx, c, consts.MethodGet, endpointConversations+"/"+id, nil)
}

// DeleteConversation removes one conversation.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	_, err := Do[struct{}](ctx, c, consts.MethodDelete, endpointConversations+"/"+id, nil)
	return err
}

// ClearConversations removes all of the user's conversations.
func (c *Client) ClearConversations(ctx context.Context) (*types.ClearChatResult, error) {
	return Do[types.ClearChatResult](ctx, c, consts.MethodDelete, endpointConversations, nil)
}
