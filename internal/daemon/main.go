// Package daemon wires the database, session store and web service into a
// running application.
package daemon

import (
	"fmt"

	sessionmysql "github.com/gofiber/storage/mysql/v2"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/dsn"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// WaitShutdown blocks until the web service shut down gracefully.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.User{},
		&models.ServiceCenter{},
		&models.Technician{},
		&models.Campaign{},
		&models.CampaignVehicle{},
		&models.CampaignTechnician{},
		&models.WorkOrder{},
		&models.VehicleDistribution{},
		&models.VehicleDistributionEntry{},
		&models.NotificationRecord{},
		&models.ConfirmationReport{},
		&models.AuditLog{},
		&models.ShippingOrder{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	// Initialize fiber session store
	sessionStorage := sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}
