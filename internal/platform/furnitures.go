package platform

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rently-vn/rently/internal/errors"
)

// Furniture is an item of furniture assigned to a room.
type Furniture struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition"`
	RoomID    string `json:"roomId"`
}

// RoomFurnitures lists the furniture of one room. The endpoint has shipped
// both enveloped (`{data: [...]}`) and bare array payloads; both are
// accepted.
func (c *Client) RoomFurnitures(ctx context.Context, roomID string) ([]Furniture, error) {
	query := url.Values{"roomId": {roomID}}
	resp, err := c.do(ctx, http.MethodGet, "/furnitures/room", query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}

	var enveloped struct {
		Data []Furniture `json:"data"`
	}
	if err := json.Unmarshal(body, &enveloped); err == nil && enveloped.Data != nil {
		return enveloped.Data, nil
	}

	var bare []Furniture
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIDecode, "cannot decode furniture response", err)
	}
	return bare, nil
}
