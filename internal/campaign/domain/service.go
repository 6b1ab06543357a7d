package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sahayahq/sahaya/pkg/db/pagination"
)

type CreateCampaignRequest struct {
	Title       string
	Category    string
	Location    string
	Description string
	ImageURL    string
	Goal        int64
	Urgent      bool
}

type ListCampaignRequest struct {
	PageToken string
	PageSize  int32
	Status    string
	Category  string
	Location  string
	Urgent    *bool
}

// ListCursor is a decoded page token. IDs are parsed before they reach a
// repository so cursor values always bind with their column types.
type ListCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type ListCampaignFilter struct {
	Status   string
	Category string
	Location string
	Urgent   *bool
	Cursor   *ListCursor
	Limit    int
}

type ListCampaignResponse struct {
	pagination.PageInfo
	Campaigns []Campaign `json:"campaigns"`
}

type GetCampaignRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCampaignRequest) (Campaign, error)
	List(context.Context, ListCampaignRequest) (ListCampaignResponse, error)
	GetByID(context.Context, GetCampaignRequest) (Campaign, error)
}

var (
	ErrInvalidTitle       = errors.New("invalid_title")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidLocation    = errors.New("invalid_location")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidGoal        = errors.New("invalid_goal")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidPageToken   = errors.New("invalid_page_token")
	ErrNotFound           = errors.New("not_found")
)
