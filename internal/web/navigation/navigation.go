// Package navigation builds the permission-filtered menu tree served to the
// frontend.
package navigation

import (
	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
)

// MenuItem is one entry of the navigation menu. An item with a Permission
// is only visible to roles holding it; an item without one is visible when
// it is a leaf or when at least one child survived filtering.
type MenuItem struct {
	Title      string     `json:"title"`
	Path       string     `json:"path,omitempty"`
	Permission string     `json:"-"`
	Children   []MenuItem `json:"children,omitempty"`
}

// Menu returns the full menu tree before filtering.
func Menu() []MenuItem {
	return []MenuItem{
		{Title: "Tổng quan", Path: "/dashboard"},
		{
			Title: "Chiến dịch",
			Children: []MenuItem{
				{Title: "Tạo chiến dịch thu hồi", Path: "/campaigns/recall/new", Permission: auth.PermCreateRecall},
				{Title: "Tạo chiến dịch dịch vụ", Path: "/campaigns/new", Permission: auth.PermCreateCampaign},
				{Title: "Phân bổ xe", Path: "/vehicle-distributions", Permission: auth.PermDistributeVehicles},
				{Title: "Theo dõi tiến độ", Path: "/campaigns/progress", Permission: auth.PermTrackProgress},
			},
		},
		{
			Title: "Trung tâm dịch vụ",
			Children: []MenuItem{
				{Title: "Lịch hẹn", Path: "/appointments", Permission: auth.PermScheduleAppointments},
				{Title: "Phân công kỹ thuật viên", Path: "/work-assignments", Permission: auth.PermAssignTechnicians},
				{Title: "Khối lượng công việc", Path: "/technicians/workload", Permission: auth.PermViewWorkload},
				{Title: "Cập nhật kết quả", Path: "/work-orders", Permission: auth.PermUpdateWorkResults},
			},
		},
		{
			Title: "Thông báo",
			Children: []MenuItem{
				{Title: "Gửi thông báo", Path: "/notifications/campaign", Permission: auth.PermSendNotifications},
				{Title: "Xác nhận thông báo", Path: "/notifications/confirm", Permission: auth.PermConfirmNotifications},
			},
		},
		{
			Title: "Báo cáo",
			Children: []MenuItem{
				{Title: "Gửi báo cáo", Path: "/reports/confirmation/new", Permission: auth.PermSubmitReports},
				{Title: "Phản hồi báo cáo", Path: "/reports/confirmation/pending", Permission: auth.PermRespondReports},
				{Title: "Xem báo cáo", Path: "/reports", Permission: auth.PermViewReports},
			},
		},
		{
			Title: "Quản trị",
			Children: []MenuItem{
				{Title: "Vận chuyển linh kiện", Path: "/shipping-orders", Permission: auth.PermManageShipping},
				{Title: "Nhật ký hệ thống", Path: "/audit-logs", Permission: auth.PermViewAuditLogs},
				{Title: "Người dùng", Path: "/admin/users", Permission: auth.PermManageUsers},
			},
		},
	}
}

// Filter prunes menu items the caller cannot see. Filtering recurses into
// children first: a parent without its own permission disappears when every
// child was pruned.
func Filter(items []MenuItem, allowed func(permission string) bool) []MenuItem {
	out := make([]MenuItem, 0, len(items))

	for _, item := range items {
		item.Children = Filter(item.Children, allowed)

		if item.Permission != "" && !allowed(item.Permission) {
			continue
		}

		if item.Permission == "" && item.Path == "" && len(item.Children) == 0 {
			continue
		}

		out = append(out, item)
	}

	return out
}
