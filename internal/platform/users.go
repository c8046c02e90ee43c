package platform

import (
	"context"
	"net/http"
)

// Profile is the account profile of the logged-in user.
type Profile struct {
	Email string   `json:"email"`
	Info  UserInfo `json:"userInfo"`
}

// UserInfo carries the editable profile fields.
type UserInfo struct {
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	DOB         string    `json:"dob,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Address     []Address `json:"address,omitempty"`
}

// Address is one saved address. Province, district and ward names come from
// the external address-lookup service.
type Address struct {
	Address      string `json:"address"`
	ProvinceName string `json:"provinceName"`
	DistrictName string `json:"districtName"`
	WardName     string `json:"wardName"`
}

// profileResponse is the `{user: {...}}` envelope of GET /users/profile.
type profileResponse struct {
	User Profile `json:"user"`
}

// UpdateProfileRequest is the body of PUT /users/profile.
type UpdateProfileRequest struct {
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	DOB         string    `json:"dob,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Address     []Address `json:"address,omitempty"`
}

// Profile fetches the logged-in user's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	var envelope profileResponse
	if err := parseResponse(resp, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// UpdateProfile replaces the editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	resp, err := c.do(ctx, http.MethodPut, "/users/profile", nil, req)
	if err != nil {
		return nil, err
	}

	var envelope profileResponse
	if err := parseResponse(resp, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}
