package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	campaigndomain "github.com/sahayahq/sahaya/internal/campaign/domain"
)

type demoCampaign struct {
	Title       string
	Category    string
	Location    string
	Description string
	Goal        int64
	Urgent      bool
}

var demoCampaigns = []demoCampaign{
	{
		Title:       "Flood Relief for Assam Villages",
		Category:    "Natural Disaster",
		Location:    "Assam",
		Description: "Emergency food, clean water and shelter kits for families displaced by the monsoon floods.",
		Goal:        500000,
		Urgent:      true,
	},
	{
		Title:       "Rebuild Homes After Cyclone",
		Category:    "Natural Disaster",
		Location:    "Odisha",
		Description: "Help coastal families rebuild homes destroyed by the cyclone before the next monsoon.",
		Goal:        750000,
		Urgent:      false,
	},
	{
		Title:       "Medical Camp for Earthquake Survivors",
		Category:    "Medical",
		Location:    "Uttarakhand",
		Description: "Mobile medical camps providing first aid, medicines and trauma care in remote hill villages.",
		Goal:        300000,
		Urgent:      true,
	},
}

// EnsureDemoCampaigns seeds sample campaigns for development environments.
// It is a no-op once any campaign exists.
func EnsureDemoCampaigns(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&campaigndomain.Campaign{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, dc := range demoCampaigns {
			campaign := &campaigndomain.Campaign{
				ID:          node.Generate(),
				Title:       dc.Title,
				Slug:        slug.Make(dc.Title),
				Category:    dc.Category,
				Location:    dc.Location,
				Description: dc.Description,
				Goal:        dc.Goal,
				Urgent:      dc.Urgent,
				Status:      campaigndomain.StatusActive,
				Metadata:    datatypes.JSONMap{},
			}
			if err := tx.Create(campaign).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
