package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Building groups rooms under one managed property.
type Building struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Floors   int    `json:"floors"`
	RoomsNum int    `json:"roomsNum"`
}

type buildingListResponse struct {
	Data []Building `json:"data"`
}

// Buildings lists all managed buildings.
func (c *Client) Buildings(ctx context.Context) ([]Building, error) {
	resp, err := c.do(ctx, http.MethodGet, "/buildings", nil, nil)
	if err != nil {
		return nil, err
	}

	var list buildingListResponse
	if err := parseResponse(resp, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// Building fetches one building by id.
func (c *Client) Building(ctx context.Context, id string) (*Building, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/buildings/%s", url.PathEscape(id)), nil, nil)
	if err != nil {
		return nil, err
	}

	var building Building
	if err := parseResponse(resp, &building); err != nil {
		return nil, err
	}
	return &building, nil
}
