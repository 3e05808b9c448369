package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/branch"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// seed fills the authoritative tables from the compiled-in defaults on
// first start. Existing rows are never touched: operators may override the
// defaults and a restart must not undo that.
func seed(_ *config.Config, db *gorm.DB) {
	seedRolesAndPermissions(db)
	seedAdminUser(db)
	seedServiceCenters(db)
}

func seedRolesAndPermissions(db *gorm.DB) {
	var count int64

	db.Model(&models.Role{}).Count(&count)
	if count > 0 {
		return
	}

	table := auth.DefaultRoleTable()

	// the Admin role holds every token, its order is the display order
	permissions := make(map[string]*models.Permission, len(table[auth.RoleAdmin]))

	for i, token := range table[auth.RoleAdmin] {
		p := &models.Permission{
			Name:        token,
			Resource:    "campaign",
			Action:      token,
			Description: auth.DescribePermission(token),
			SortOrder:   i + 1,
		}

		if err := db.Create(p).Error; err != nil {
			log.Error().Err(err).Str("permission", token).Msg("failed to seed permission")
			return
		}

		permissions[token] = p
	}

	for _, role := range auth.Roles() {
		r := &models.Role{
			Name:        role.String(),
			Description: "Vai trò " + role.String(),
			IsSystem:    true,
		}

		if err := db.Create(r).Error; err != nil {
			log.Error().Err(err).Str("role", role.String()).Msg("failed to seed role")
			return
		}

		for _, token := range table[role] {
			p, ok := permissions[token]
			if !ok {
				continue
			}

			if err := db.Create(&models.RolePermission{RoleID: r.ID, PermissionID: p.ID}).Error; err != nil {
				log.Error().Err(err).Str("role", role.String()).Str("permission", token).
					Msg("failed to seed role permission")
			}
		}
	}

	log.Info().Int("permissions", len(permissions)).Msg("seeded default role table")
}

func seedAdminUser(db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	var adminRole models.Role
	if err := db.Where("name = ?", auth.RoleAdmin.String()).First(&adminRole).Error; err != nil {
		log.Error().Err(err).Msg("admin role missing, skipping admin user seed")
		return
	}

	db.Create(
		&models.User{
			Username: "admin",
			Email:    "admin@localhost",
			Password: models.HashPassword("changeme"),
			FullName: "Administrator",
			Active:   true,
			RoleID:   adminRole.ID,
		},
	)

	log.Warn().Msg("seeded default admin user, change its password")
}

// seedServiceCenters creates one center per branch office so a fresh
// install can distribute vehicles immediately.
func seedServiceCenters(db *gorm.DB) {
	var count int64

	db.Model(&models.ServiceCenter{}).Count(&count)
	if count > 0 {
		return
	}

	for _, displayName := range branch.DisplayNames() {
		enum, err := branch.NormalizeToEnum(displayName)
		if err != nil {
			continue
		}

		db.Create(&models.ServiceCenter{
			Code:       "SC-" + enum,
			Name:       "Trung tâm dịch vụ " + displayName,
			BranchCode: enum,
			Active:     true,
		})
	}
}
