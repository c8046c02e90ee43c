package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Room is a rentable room in a managed building.
type Room struct {
	ID          string  `json:"id"`
	RoomNumber  string  `json:"roomNumber"`
	Price       float64 `json:"price"`
	Area        float64 `json:"area"`
	Status      string  `json:"status"`
	MaxTenants  int     `json:"maxTenants"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	BuildingID  string  `json:"buildingId"`
}

// roomListResponse is the `{data: [...]}` envelope of GET /rooms.
type roomListResponse struct {
	Data []Room `json:"data"`
}

// Rooms lists rooms matching the given query filters.
func (c *Client) Rooms(ctx context.Context, filters url.Values) ([]Room, error) {
	resp, err := c.do(ctx, http.MethodGet, "/rooms", filters, nil)
	if err != nil {
		return nil, err
	}

	var list roomListResponse
	if err := parseResponse(resp, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// Room fetches one room by id.
func (c *Client) Room(ctx context.Context, id string) (*Room, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/rooms/%s", url.PathEscape(id)), nil, nil)
	if err != nil {
		return nil, err
	}

	var room Room
	if err := parseResponse(resp, &room); err != nil {
		return nil, err
	}
	return &room, nil
}
