// Package permission exposes the role and permission surface consumed by
// the frontend: role tables, Vietnamese descriptions, ad-hoc checks and the
// filtered menu tree.
package permission

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/navigation"
)

const (
	// Path is the base path of the permission routes.
	Path = "/permissions"
)

// Service is the permission handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	authService *auth.Service
}

// Handler is the permission handler.
var Handler = Service{}

// Init initializes the permission handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if app == nil || cfg == nil || db == nil || authService == nil {
		return errors.New("app, cfg, db or authService is nil")
	}

	s.cfg = cfg
	s.authService = authService

	app.Route(Path, func(router fiber.Router) {
		router.Get("/roles", s.Roles)
		router.Get("/roles/:role", s.RolePermissions)
		router.Get("/descriptions/:role", s.Descriptions)
		router.Post("/check", s.Check)
		router.Post("/validate", s.Validate)
		router.Post("/endpoint-access", s.EndpointAccess)
		router.Post("/feature-access", s.FeatureAccess)
		router.Get("/menu-items", s.MenuItems)
	})

	return nil
}

// roleInfo is one role of the closed role set.
type roleInfo struct {
	Name         string `json:"name"`
	BranchScoped bool   `json:"branchScoped"`
}

// Roles lists the closed role set.
func (s *Service) Roles(c *fiber.Ctx) error {
	roles := auth.Roles()

	out := make([]roleInfo, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleInfo{
			Name:         role.String(),
			BranchScoped: role.BranchScoped(),
		})
	}

	return handler.OK(c, out)
}

// RolePermissions lists the permission tokens of one role.
func (s *Service) RolePermissions(c *fiber.Ctx) error {
	role, err := auth.ParseRole(c.Params("role"))
	if err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "Vai trò không tồn tại")
	}

	return handler.OK(c, s.authService.RolePermissions(c.Context(), role))
}

// Descriptions lists a role's permissions with their Vietnamese descriptions.
func (s *Service) Descriptions(c *fiber.Ctx) error {
	role, err := auth.ParseRole(c.Params("role"))
	if err != nil {
		return handler.Fail(c, fiber.StatusNotFound, "Vai trò không tồn tại")
	}

	return handler.OK(c, s.authService.PermissionDescriptions(c.Context(), role))
}

// checkRequest is the body of an ad-hoc permission check.
type checkRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Mode        string   `json:"mode"` // "any" (default) or "all"
}

// Check answers an ad-hoc multi-permission question. Unknown roles are a
// plain "false", mirroring the evaluator's total semantics.
func (s *Service) Check(c *fiber.Ctx) error {
	req := new(checkRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		return handler.OK(c, fiber.Map{"allowed": false})
	}

	var allowed bool

	switch req.Mode {
	case "all":
		allowed = s.authService.HasAllPermissions(role, req.Permissions)
	default:
		allowed = s.authService.HasAnyPermission(role, req.Permissions)
	}

	return handler.OK(c, fiber.Map{"allowed": allowed})
}

// validateRequest is the body of an action gate request.
type validateRequest struct {
	Role       string `json:"role"`
	Permission string `json:"permission"`
	Action     string `json:"action"`
}

// Validate gates one sensitive action and returns the evaluator's verdict,
// including the PERMISSION_DENIED code and Vietnamese message on denial.
func (s *Service) Validate(c *fiber.Ctx) error {
	req := new(validateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		return handler.OK(c, auth.Validation{
			Allowed:   false,
			Error:     "Bạn không có quyền " + auth.DescribePermission(req.Permission),
			ErrorCode: auth.ErrorCodePermissionDenied,
		})
	}

	return handler.OK(c, s.authService.ValidateAction(c.Context(), role, req.Permission, req.Action))
}

// endpointRule maps one gated API endpoint to its required permission.
// First matching rule wins, so more specific rules come first.
type endpointRule struct {
	method     string
	prefix     string
	suffix     string
	permission string
}

var endpointRules = []endpointRule{
	{fiber.MethodPost, "/notifications", "/confirm", auth.PermConfirmNotifications},
	{fiber.MethodPost, "/notifications", "", auth.PermSendNotifications},
	{fiber.MethodPut, "/reports/confirmation", "/response", auth.PermRespondReports},
	{fiber.MethodPut, "/reports/confirmation", "/revise", auth.PermSubmitReports},
	{fiber.MethodPost, "/reports/confirmation", "/reminders", auth.PermSendNotifications},
	{fiber.MethodGet, "/reports/confirmation/pending", "", auth.PermRespondReports},
	{fiber.MethodGet, "/reports/confirmation", "", auth.PermViewReports},
	{fiber.MethodPost, "/reports/confirmation", "", auth.PermSubmitReports},
	{fiber.MethodPost, "/vehicle-distributions", "", auth.PermDistributeVehicles},
	{fiber.MethodGet, "/vehicle-distributions", "", auth.PermDistributeVehicles},
	{fiber.MethodPost, "/work-assignments", "", auth.PermAssignTechnicians},
	{fiber.MethodGet, "/work-assignments", "", auth.PermViewReports},
	{fiber.MethodPut, "/work-orders", "/reassign", auth.PermAssignTechnicians},
	{fiber.MethodPut, "/work-orders", "", auth.PermUpdateWorkResults},
	{fiber.MethodGet, "/technicians/workload", "", auth.PermViewWorkload},
	{fiber.MethodPost, "/campaigns", "/workflow", auth.PermTrackProgress},
	{fiber.MethodPost, "/shipping-orders", "", auth.PermManageShipping},
	{fiber.MethodGet, "/shipping-orders", "", auth.PermManageShipping},
	{fiber.MethodGet, "/audit-logs", "", auth.PermViewAuditLogs},
	{"", "/admin", "", auth.PermManageUsers},
}

// requiredPermission resolves the permission gating an endpoint, if any.
func requiredPermission(method, path string) (string, bool) {
	for _, rule := range endpointRules {
		if rule.method != "" && rule.method != method {
			continue
		}

		if !strings.HasPrefix(path, rule.prefix) {
			continue
		}

		if rule.suffix != "" && !strings.HasSuffix(path, rule.suffix) {
			continue
		}

		return rule.permission, true
	}

	return "", false
}

// endpointAccessRequest asks whether a role may call one API endpoint.
type endpointAccessRequest struct {
	Role   string `json:"role"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// EndpointAccess answers whether a role may call an API endpoint. Endpoints
// without a gating rule are open to every authenticated role.
func (s *Service) EndpointAccess(c *fiber.Ctx) error {
	req := new(endpointAccessRequest)
	if err := c.BodyParser(req); err != nil || req.Method == "" || req.Path == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		return handler.OK(c, fiber.Map{"allowed": false})
	}

	perm, gated := requiredPermission(strings.ToUpper(req.Method), req.Path)
	if !gated {
		return handler.OK(c, fiber.Map{"allowed": true})
	}

	return handler.OK(c, fiber.Map{
		"allowed":    s.authService.HasPermission(role, perm),
		"permission": perm,
	})
}

// featurePermissions maps each frontend feature area to the permissions
// that unlock it. Holding any one of them grants access.
var featurePermissions = map[string][]string{
	"campaign_management":  {auth.PermCreateRecall, auth.PermCreateCampaign},
	"campaign_workflow":    {auth.PermDistributeVehicles, auth.PermScheduleAppointments, auth.PermAssignTechnicians, auth.PermTrackProgress},
	"notifications":        {auth.PermSendNotifications, auth.PermConfirmNotifications},
	"work_results":         {auth.PermUpdateWorkResults, auth.PermViewWorkload},
	"confirmation_reports": {auth.PermSubmitReports, auth.PermRespondReports, auth.PermViewReports},
	"shipping":             {auth.PermManageShipping},
	"administration":       {auth.PermManageUsers, auth.PermViewAuditLogs},
}

// featureAccessRequest asks whether a role may use one feature area.
type featureAccessRequest struct {
	Role    string `json:"role"`
	Feature string `json:"feature"`
}

// FeatureAccess answers whether a role may use a feature area. Unknown
// features and unknown roles are denied.
func (s *Service) FeatureAccess(c *fiber.Ctx) error {
	req := new(featureAccessRequest)
	if err := c.BodyParser(req); err != nil || req.Feature == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ")
	}

	role, err := auth.ParseRole(req.Role)
	if err != nil {
		return handler.OK(c, fiber.Map{"allowed": false})
	}

	perms, ok := featurePermissions[req.Feature]
	if !ok {
		return handler.OK(c, fiber.Map{"allowed": false})
	}

	return handler.OK(c, fiber.Map{"allowed": s.authService.HasAnyPermission(role, perms)})
}

// MenuItems returns the navigation tree filtered to the caller's role.
func (s *Service) MenuItems(c *fiber.Ctx) error {
	role, ok := auth.RoleFromContext(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	items := navigation.Filter(navigation.Menu(), func(permission string) bool {
		return s.authService.HasPermission(role, permission)
	})

	return handler.OK(c, items)
}
