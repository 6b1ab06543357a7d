package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/sahayahq/sahaya/internal/campaign/domain"
	"github.com/sahayahq/sahaya/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("campaign.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCampaignRequest) (domain.Campaign, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Campaign{}, domain.ErrInvalidTitle
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return domain.Campaign{}, domain.ErrInvalidCategory
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return domain.Campaign{}, domain.ErrInvalidLocation
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Campaign{}, domain.ErrInvalidDescription
	}
	if req.Goal <= 0 {
		return domain.Campaign{}, domain.ErrInvalidGoal
	}

	id := s.genID.Generate()
	now := time.Now().UTC()
	campaign := domain.Campaign{
		ID:          id,
		Title:       title,
		Slug:        s.uniqueSlug(ctx, title, id),
		Category:    category,
		Location:    location,
		Description: description,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Goal:        req.Goal,
		Urgent:      req.Urgent,
		Status:      domain.StatusActive,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &campaign); err != nil {
		return domain.Campaign{}, err
	}

	s.log.Info("campaign created",
		zap.String("campaign_id", campaign.ID.String()),
		zap.String("slug", campaign.Slug),
		zap.Int64("goal", campaign.Goal),
	)

	return campaign, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCampaignRequest) (domain.ListCampaignResponse, error) {
	filter := domain.ListCampaignFilter{
		Status:   strings.TrimSpace(req.Status),
		Category: strings.TrimSpace(req.Category),
		Location: strings.TrimSpace(req.Location),
		Urgent:   req.Urgent,
	}

	cursor, err := decodeListCursor(req.PageToken)
	if err != nil {
		return domain.ListCampaignResponse{}, err
	}
	filter.Cursor = cursor

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	filter.Limit = int(pageSize)

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListCampaignResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(campaign *domain.Campaign) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        campaign.ID.String(),
			CreatedAt: campaign.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	campaigns := make([]domain.Campaign, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		campaigns = append(campaigns, *item)
	}

	resp := domain.ListCampaignResponse{Campaigns: campaigns}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCampaignRequest) (domain.Campaign, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Campaign{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Campaign{}, err
	}
	if item == nil {
		return domain.Campaign{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// decodeListCursor parses a page token into typed cursor values. The ID must
// be a snowflake so it binds against the bigint column on every dialect.
func decodeListCursor(token string) (*domain.ListCursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	decoded, err := pagination.DecodeCursor(token)
	if err != nil {
		return nil, domain.ErrInvalidPageToken
	}
	createdAt, err := time.Parse(time.RFC3339Nano, decoded.CreatedAt)
	if err != nil {
		return nil, domain.ErrInvalidPageToken
	}
	id, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidPageToken
	}
	return &domain.ListCursor{ID: id, CreatedAt: createdAt}, nil
}

// uniqueSlug appends the campaign ID when a slug collision exists. Lookup
// failures fall through to the suffixed form, which is always unique.
func (s *Service) uniqueSlug(ctx context.Context, title string, id snowflake.ID) string {
	base := slug.Make(title)
	existing, err := s.repo.FindBySlug(ctx, s.db, base)
	if err == nil && existing == nil {
		return base
	}
	return fmt.Sprintf("%s-%s", base, id.String())
}
