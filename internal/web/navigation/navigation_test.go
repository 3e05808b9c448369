package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_PrunesByPermission(t *testing.T) {
	allowed := map[string]bool{
		"update_work_results": true,
		"view_reports":        true,
	}

	filtered := Filter(Menu(), func(p string) bool { return allowed[p] })

	titles := make([]string, 0, len(filtered))
	for _, item := range filtered {
		titles = append(titles, item.Title)
	}

	assert.Contains(t, titles, "Tổng quan", "items without a permission stay visible")
	assert.Contains(t, titles, "Trung tâm dịch vụ")
	assert.Contains(t, titles, "Báo cáo")
	assert.NotContains(t, titles, "Thông báo", "a parent with no surviving child disappears")
	assert.NotContains(t, titles, "Quản trị")
}

func TestFilter_KeepsOnlyAllowedChildren(t *testing.T) {
	filtered := Filter(Menu(), func(p string) bool { return p == "update_work_results" })

	var center *MenuItem
	for i := range filtered {
		if filtered[i].Title == "Trung tâm dịch vụ" {
			center = &filtered[i]
		}
	}

	require.NotNil(t, center)
	require.Len(t, center.Children, 1)
	assert.Equal(t, "Cập nhật kết quả", center.Children[0].Title)
}

func TestFilter_NothingAllowed(t *testing.T) {
	filtered := Filter(Menu(), func(string) bool { return false })

	require.Len(t, filtered, 1, "only the dashboard survives")
	assert.Equal(t, "/dashboard", filtered[0].Path)
}

func TestFilter_EverythingAllowed(t *testing.T) {
	full := Menu()
	filtered := Filter(full, func(string) bool { return true })

	assert.Len(t, filtered, len(full))
}
