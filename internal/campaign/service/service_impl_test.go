package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sahayahq/sahaya/internal/campaign/domain"
	"github.com/sahayahq/sahaya/internal/campaign/repository"
	"github.com/sahayahq/sahaya/pkg/db"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Campaign{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc
}

func validCreateRequest() domain.CreateCampaignRequest {
	return domain.CreateCampaignRequest{
		Title:       "Kerala Flood Relief",
		Category:    "Natural Disaster",
		Location:    "Kerala",
		Description: "Food and shelter for displaced families",
		Goal:        500000,
	}
}

func TestCreateCampaign(t *testing.T) {
	svc := newTestService(t)

	campaign, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotZero(t, campaign.ID)
	assert.Equal(t, "kerala-flood-relief", campaign.Slug)
	assert.Equal(t, domain.StatusActive, campaign.Status)
	assert.Zero(t, campaign.RaisedAmount)
	assert.Zero(t, campaign.DonationCount)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name   string
		mutate func(*domain.CreateCampaignRequest)
		want   error
	}{
		{"empty title", func(r *domain.CreateCampaignRequest) { r.Title = "  " }, domain.ErrInvalidTitle},
		{"empty category", func(r *domain.CreateCampaignRequest) { r.Category = "" }, domain.ErrInvalidCategory},
		{"empty location", func(r *domain.CreateCampaignRequest) { r.Location = "" }, domain.ErrInvalidLocation},
		{"empty description", func(r *domain.CreateCampaignRequest) { r.Description = "" }, domain.ErrInvalidDescription},
		{"zero goal", func(r *domain.CreateCampaignRequest) { r.Goal = 0 }, domain.ErrInvalidGoal},
		{"negative goal", func(r *domain.CreateCampaignRequest) { r.Goal = -1 }, domain.ErrInvalidGoal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateCampaignSlugCollision(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Equal(t, "kerala-flood-relief-"+second.ID.String(), second.Slug)
}

func TestGetByID(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), domain.GetCampaignRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)

	_, err = svc.GetByID(context.Background(), domain.GetCampaignRequest{ID: "not-a-number"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(context.Background(), domain.GetCampaignRequest{ID: "999999999999999999"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCampaigns(t *testing.T) {
	svc := newTestService(t)

	for _, title := range []string{"Flood Relief", "Cyclone Relief", "Drought Relief"} {
		req := validCreateRequest()
		req.Title = title
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), domain.ListCampaignRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, resp.Campaigns, 2)
	require.True(t, resp.HasMore)
	require.NotEmpty(t, resp.NextPageToken)

	next, err := svc.List(context.Background(), domain.ListCampaignRequest{PageSize: 2, PageToken: resp.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, next.Campaigns, 1)
	assert.False(t, next.HasMore)
}

func TestListCampaignsRejectsBadPageToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.List(context.Background(), domain.ListCampaignRequest{PageToken: "not-base64!"})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)
}
