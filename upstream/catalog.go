package upstream

import (
	"context"
	"net/url"
	"strconv"

	"fitpass/models"
)

// sessionDTO is the wire shape of a class session.
type sessionDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	AvailableSlots int     `json:"availableSlots"`
	StudioID       string  `json:"studioId"`
	ClassID        string  `json:"classId"`
	ClassType      string  `json:"classType"`
}

func (d sessionDTO) toItem() models.BookableItem {
	return models.BookableItem{
		Kind:           models.KindSession,
		ID:             d.ID,
		Name:           d.Name,
		BasePrice:      d.Price,
		AvailableSlots: d.AvailableSlots,
		StudioID:       d.StudioID,
		ClassID:        d.ClassID,
		ClassType:      d.ClassType,
	}
}

// eventDTO is the wire shape of an event.
type eventDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	AvailableSlots int     `json:"availableSlots"`
	StudioID       string  `json:"studioId"`
}

func (d eventDTO) toItem() models.BookableItem {
	return models.BookableItem{
		Kind:           models.KindEvent,
		ID:             d.ID,
		Name:           d.Name,
		BasePrice:      d.Price,
		AvailableSlots: d.AvailableSlots,
		StudioID:       d.StudioID,
	}
}

// GetSessionByID fetches a single class session.
func (c *Client) GetSessionByID(ctx context.Context, id string) (*models.BookableItem, error) {
	var dto sessionDTO
	if err := c.get(ctx, "/api/v1/sessions/getSessionById/"+url.PathEscape(id), nil, "", &dto); err != nil {
		return nil, err
	}
	item := dto.toItem()
	return &item, nil
}

// GetEventByID fetches a single event.
func (c *Client) GetEventByID(ctx context.Context, id string) (*models.BookableItem, error) {
	var dto eventDTO
	if err := c.get(ctx, "/api/v1/events/getEventById/"+url.PathEscape(id), nil, "", &dto); err != nil {
		return nil, err
	}
	item := dto.toItem()
	return &item, nil
}

// ListActiveSessions lists sessions, optionally filtered to a date (YYYY-MM-DD).
func (c *Client) ListActiveSessions(ctx context.Context, date string) ([]models.BookableItem, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var out struct {
		Sessions []sessionDTO `json:"sessions"`
	}
	if err := c.get(ctx, "/api/v1/sessions/website/getActiveSessions", query, "", &out); err != nil {
		return nil, err
	}
	items := make([]models.BookableItem, 0, len(out.Sessions))
	for _, dto := range out.Sessions {
		items = append(items, dto.toItem())
	}
	return items, nil
}

// ListActiveEvents lists events, paginated.
func (c *Client) ListActiveEvents(ctx context.Context, page, limit int) ([]models.BookableItem, int, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Events []eventDTO `json:"events"`
		Total  int        `json:"total"`
	}
	if err := c.get(ctx, "/api/v1/events/website/getActiveEvents", query, "", &out); err != nil {
		return nil, 0, err
	}
	items := make([]models.BookableItem, 0, len(out.Events))
	for _, dto := range out.Events {
		items = append(items, dto.toItem())
	}
	return items, out.Total, nil
}
