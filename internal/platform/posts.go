package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Post is a rental listing published by a landlord.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Address    string    `json:"address"`
	Price      float64   `json:"price"`
	Area       float64   `json:"area"`
	Images     []string  `json:"images"`
	IsDraft    bool      `json:"isDraft"`
	BuildingID string    `json:"buildingId"`
	Landlord   *Landlord `json:"landlordId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Landlord is the post author, embedded in post payloads.
type Landlord struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type postListResponse struct {
	Data []Post `json:"data"`
}

type postResponse struct {
	Data Post `json:"data"`
}

// Posts lists published rental posts matching the given query filters.
func (c *Client) Posts(ctx context.Context, filters url.Values) ([]Post, error) {
	resp, err := c.do(ctx, http.MethodGet, "/posts", filters, nil)
	if err != nil {
		return nil, err
	}

	var list postListResponse
	if err := parseResponse(resp, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// Post fetches one post by id. The detail endpoint wraps the post in the
// same `{data: ...}` envelope as the list.
func (c *Client) Post(ctx context.Context, id string) (*Post, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%s", url.PathEscape(id)), nil, nil)
	if err != nil {
		return nil, err
	}

	var detail postResponse
	if err := parseResponse(resp, &detail); err != nil {
		return nil, err
	}
	return &detail.Data, nil
}
