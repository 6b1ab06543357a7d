package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	authdomain "github.com/sahayahq/sahaya/internal/auth/domain"
	campaigndomain "github.com/sahayahq/sahaya/internal/campaign/domain"
	"github.com/sahayahq/sahaya/internal/config"
	donationdomain "github.com/sahayahq/sahaya/internal/donation/domain"
	newsletterdomain "github.com/sahayahq/sahaya/internal/newsletter/domain"
	"github.com/sahayahq/sahaya/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "sqlite" {
			// sqlite is for local hacking; the embedded migrations are
			// written for postgres.
			if err := conn.AutoMigrate(
				&campaigndomain.Campaign{},
				&donationdomain.Donation{},
				&authdomain.User{},
				&authdomain.Session{},
				&newsletterdomain.Subscriber{},
			); err != nil {
				return err
			}
		} else {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		if cfg.SeedDemo {
			return seed.EnsureDemoCampaigns(conn)
		}
		return nil
	}),
)
