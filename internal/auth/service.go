package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

// Service is the permission evaluator. It answers "can role R perform
// action A" against an in-memory role table and never executes the action
// itself. The authoritative table lives in the database; every database
// failure silently degrades to the compiled-in defaults.
//
// A Service is constructed once at application start and passed to its
// consumers; there is no package-level instance.
type Service struct {
	db *gorm.DB

	mu    sync.RWMutex
	table map[Role][]string
}

// NewService creates a new permission evaluator seeded with the default
// role table. db may be nil, in which case every lookup uses the defaults.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:    db,
		table: DefaultRoleTable(),
	}
}

// PermissionDescription pairs a permission token with its human-readable
// description for UI rendering.
type PermissionDescription struct {
	Permission  string `json:"permission"`
	Description string `json:"description"`
}

// Validation is the result of gating one action.
type Validation struct {
	Allowed   bool   `json:"allowed"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// HasPermission checks if a role holds a permission token. It is pure and
// total over the current in-memory table: unknown roles and unknown tokens
// are false, never an error.
func (s *Service) HasPermission(role Role, permission string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.table[role] {
		if p == permission {
			return true
		}
	}

	return false
}

// HasAnyPermission checks if a role holds at least one of the given
// permissions. An empty list is false.
func (s *Service) HasAnyPermission(role Role, permissions []string) bool {
	for _, perm := range permissions {
		if s.HasPermission(role, perm) {
			return true
		}
	}

	return false
}

// HasAllPermissions checks if a role holds all of the given permissions.
// An empty list is vacuously true.
func (s *Service) HasAllPermissions(role Role, permissions []string) bool {
	for _, perm := range permissions {
		if !s.HasPermission(role, perm) {
			return false
		}
	}

	return true
}

// ReplaceTable fully replaces the in-memory role table. There is no partial
// merge: a refresh from the authoritative source swaps the whole table for
// the session, and a subsequent query reflects the change immediately.
func (s *Service) ReplaceTable(table map[Role][]string) {
	replacement := make(map[Role][]string, len(table))
	for role, perms := range table {
		replacement[role] = append([]string(nil), perms...)
	}

	s.mu.Lock()
	s.table = replacement
	s.mu.Unlock()
}

// RolePermissions returns the authoritative permission list for a role,
// falling back to the local table on any database failure. The fallback is
// silent to the caller and logged for diagnostics.
func (s *Service) RolePermissions(ctx context.Context, role Role) []string {
	return fallback(
		func() ([]string, error) { return s.storePermissions(ctx, role) },
		func() []string { return s.localPermissions(role) },
		"role_permissions",
	)
}

// PermissionDescriptions returns the role's permissions paired with their
// Vietnamese descriptions, raw token when no description exists. Same
// authoritative-then-local pattern as RolePermissions.
func (s *Service) PermissionDescriptions(ctx context.Context, role Role) []PermissionDescription {
	perms := s.RolePermissions(ctx, role)

	out := make([]PermissionDescription, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionDescription{
			Permission:  p,
			Description: DescribePermission(p),
		})
	}

	return out
}

// ValidateAction gates a sensitive action. A denial carries the stable
// PERMISSION_DENIED code and a Vietnamese message interpolating the
// permission's description.
func (s *Service) ValidateAction(ctx context.Context, role Role, permission, actionLabel string) Validation {
	allowed := fallback(
		func() (bool, error) { return s.storeHasPermission(ctx, role, permission) },
		func() bool { return s.HasPermission(role, permission) },
		"validate_action",
	)

	if allowed {
		return Validation{Allowed: true}
	}

	log.Debug().Str("role", role.String()).Str("permission", permission).
		Str("action", actionLabel).Msg("action denied")

	return Validation{
		Allowed:   false,
		Error:     "Bạn không có quyền " + DescribePermission(permission),
		ErrorCode: ErrorCodePermissionDenied,
	}
}

// LogAction emits one audit entry. The entry is constructed locally and
// always returned; the database insert is best-effort and a failure is only
// logged, never propagated.
func (s *Service) LogAction(
	ctx context.Context,
	role Role,
	userID uint64,
	action, resourceID string,
	details map[string]any,
) models.AuditLog {
	var detailsJSON string

	if len(details) > 0 {
		if raw, err := json.Marshal(details); err == nil {
			detailsJSON = string(raw)
		}
	}

	entry := models.AuditLog{
		Timestamp:  time.Now(),
		Role:       role.String(),
		UserID:     userID,
		Action:     action,
		ResourceID: resourceID,
		Details:    detailsJSON,
	}

	if s.db != nil {
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			log.Warn().Err(err).Str("action", action).Msg("audit sink rejected entry")
		}
	}

	return entry
}

// fallback resolves a value from the authoritative source and degrades to
// the local resolver on any failure. The single wrapper replaces the
// per-method try/catch the pattern would otherwise repeat.
func fallback[T any](authoritative func() (T, error), local func() T, lookup string) T {
	v, err := authoritative()
	if err != nil {
		log.Warn().Err(err).Str("lookup", lookup).
			Msg("authoritative permission lookup failed, using local defaults")

		return local()
	}

	return v
}

// localPermissions returns a copy of the in-memory list for a role.
func (s *Service) localPermissions(role Role) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.table[role]...)
}

// storePermissions reads the role's permission tokens from the database,
// ordered for display. A role with no rows is treated as absent from the
// authoritative table so the defaults apply.
func (s *Service) storePermissions(ctx context.Context, role Role) ([]string, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}

	var permissions []string

	err := s.db.WithContext(ctx).Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Where("roles.name = ?", role.String()).
		Order("permissions.sort_order").
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, err
	}

	if len(permissions) == 0 {
		return nil, errRoleNotInStore
	}

	return permissions, nil
}

// storeHasPermission checks one (role, permission) pair in the database.
func (s *Service) storeHasPermission(ctx context.Context, role Role, permission string) (bool, error) {
	perms, err := s.storePermissions(ctx, role)
	if err != nil {
		return false, err
	}

	for _, p := range perms {
		if p == permission {
			return true, nil
		}
	}

	return false, nil
}
