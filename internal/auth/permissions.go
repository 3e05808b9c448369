package auth

// Permission constants define the available permissions in the system.
// Permissions are flat string tokens gating one governed action each; they
// are never combined or hierarchical.
const (
	// PermCreateRecall allows creating safety recalls.
	PermCreateRecall = "create_recall"
	// PermCreateCampaign allows creating service campaigns.
	PermCreateCampaign = "create_campaign"
	// PermDistributeVehicles allows distributing campaign vehicles to centers.
	PermDistributeVehicles = "distribute_vehicles_to_centers"
	// PermScheduleAppointments allows computing campaign appointment schedules.
	PermScheduleAppointments = "schedule_campaign_appointments"
	// PermAssignTechnicians allows assigning technicians to campaign work.
	PermAssignTechnicians = "assign_campaign_technicians"
	// PermTrackProgress allows tracking campaign progress.
	PermTrackProgress = "track_campaign_progress"
	// PermSendNotifications allows pushing campaign notices to centers.
	PermSendNotifications = "send_campaign_notifications"
	// PermConfirmNotifications allows a center to acknowledge a notice.
	PermConfirmNotifications = "confirm_campaign_notifications"
	// PermUpdateWorkResults allows technicians to record work results.
	PermUpdateWorkResults = "update_work_results"
	// PermViewWorkload allows viewing technician workload.
	PermViewWorkload = "view_technician_workload"
	// PermSubmitReports allows a center to submit confirmation reports.
	PermSubmitReports = "submit_confirmation_reports"
	// PermRespondReports allows the manufacturer to respond to reports.
	PermRespondReports = "respond_confirmation_reports"
	// PermViewReports allows reading reports and statistics.
	PermViewReports = "view_reports"
	// PermManageShipping allows booking and tracking parts shipments.
	PermManageShipping = "manage_shipping_orders"
	// PermViewAuditLogs allows reading the audit trail.
	PermViewAuditLogs = "view_audit_logs"
	// PermManageUsers allows managing staff accounts.
	PermManageUsers = "manage_users"
)

// permissionDescriptions maps each token to its Vietnamese description.
// Denial messages interpolate these verbatim ("Bạn không có quyền {mô tả}");
// a missing entry falls back to the raw token.
var permissionDescriptions = map[string]string{ //nolint:gochecknoglobals
	PermCreateRecall:         "tạo chiến dịch thu hồi",
	PermCreateCampaign:       "tạo chiến dịch dịch vụ",
	PermDistributeVehicles:   "phân bổ xe về trung tâm dịch vụ",
	PermScheduleAppointments: "lập lịch hẹn chiến dịch",
	PermAssignTechnicians:    "phân công kỹ thuật viên",
	PermTrackProgress:        "theo dõi tiến độ chiến dịch",
	PermSendNotifications:    "gửi thông báo chiến dịch",
	PermConfirmNotifications: "xác nhận thông báo chiến dịch",
	PermUpdateWorkResults:    "cập nhật kết quả công việc",
	PermViewWorkload:         "xem khối lượng công việc kỹ thuật viên",
	PermSubmitReports:        "gửi báo cáo xác nhận",
	PermRespondReports:       "phản hồi báo cáo xác nhận",
	PermViewReports:          "xem báo cáo",
	PermManageShipping:       "quản lý đơn vận chuyển phụ tùng",
	PermViewAuditLogs:        "xem nhật ký hệ thống",
	PermManageUsers:          "quản lý tài khoản nhân viên",
}

// DescribePermission returns the Vietnamese description for a token, or the
// raw token if no description exists.
func DescribePermission(permission string) string {
	if d, ok := permissionDescriptions[permission]; ok {
		return d
	}

	return permission
}

// DefaultRoleTable returns the compiled-in role table: for each role, the
// ordered list of its permission tokens (insertion order is display order).
// The table is complete for every token the web layer gates on, so the
// service stays fully gated when the database is unavailable.
func DefaultRoleTable() map[Role][]string {
	return map[Role][]string{
		RoleAdmin: {
			PermCreateRecall,
			PermCreateCampaign,
			PermDistributeVehicles,
			PermScheduleAppointments,
			PermAssignTechnicians,
			PermTrackProgress,
			PermSendNotifications,
			PermConfirmNotifications,
			PermUpdateWorkResults,
			PermViewWorkload,
			PermSubmitReports,
			PermRespondReports,
			PermViewReports,
			PermManageShipping,
			PermViewAuditLogs,
			PermManageUsers,
		},
		RoleEVMStaff: {
			PermCreateRecall,
			PermCreateCampaign,
			PermDistributeVehicles,
			PermScheduleAppointments,
			PermTrackProgress,
			PermSendNotifications,
			PermRespondReports,
			PermViewReports,
			PermViewWorkload,
			PermViewAuditLogs,
		},
		RoleSCAdmin: {
			PermAssignTechnicians,
			PermTrackProgress,
			PermConfirmNotifications,
			PermUpdateWorkResults,
			PermViewWorkload,
			PermSubmitReports,
			PermViewReports,
			PermManageShipping,
		},
		RoleSCStaff: {
			PermConfirmNotifications,
			PermSubmitReports,
			PermViewReports,
			PermViewWorkload,
			PermManageShipping,
		},
		RoleSCTechnician: {
			PermUpdateWorkResults,
			PermViewReports,
		},
	}
}
