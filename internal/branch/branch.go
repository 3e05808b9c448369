// Package branch maps between branch display names and their enum codes.
// The network operates 21 branch offices, one per covered district; the
// table below is the closed set and every other string is rejected.
package branch

import "errors"

// ErrUnknownBranch is returned when a display name or code is not one of
// the 21 known districts.
var ErrUnknownBranch = errors.New("unknown branch district")

// displayToEnum is the canonical district table. Insertion order of the
// companion slice below is the display order used in dropdowns.
var displayToEnum = map[string]string{ //nolint:gochecknoglobals
	"Quận 1":     "QUAN_1",
	"Quận 3":     "QUAN_3",
	"Quận 4":     "QUAN_4",
	"Quận 5":     "QUAN_5",
	"Quận 6":     "QUAN_6",
	"Quận 7":     "QUAN_7",
	"Quận 8":     "QUAN_8",
	"Quận 10":    "QUAN_10",
	"Quận 11":    "QUAN_11",
	"Quận 12":    "QUAN_12",
	"Bình Tân":   "BINH_TAN",
	"Bình Thạnh": "BINH_THANH",
	"Gò Vấp":     "GO_VAP",
	"Phú Nhuận":  "PHU_NHUAN",
	"Tân Bình":   "TAN_BINH",
	"Tân Phú":    "TAN_PHU",
	"Thủ Đức":    "THU_DUC",
	"Bình Chánh": "BINH_CHANH",
	"Củ Chi":     "CU_CHI",
	"Hóc Môn":    "HOC_MON",
	"Nhà Bè":     "NHA_BE",
}

// displayOrder preserves dropdown ordering.
var displayOrder = []string{ //nolint:gochecknoglobals
	"Quận 1", "Quận 3", "Quận 4", "Quận 5", "Quận 6", "Quận 7", "Quận 8",
	"Quận 10", "Quận 11", "Quận 12",
	"Bình Tân", "Bình Thạnh", "Gò Vấp", "Phú Nhuận", "Tân Bình", "Tân Phú",
	"Thủ Đức",
	"Bình Chánh", "Củ Chi", "Hóc Môn", "Nhà Bè",
}

// enumToDisplay is the inverse table, built once at init.
var enumToDisplay = func() map[string]string { //nolint:gochecknoglobals
	m := make(map[string]string, len(displayToEnum))
	for display, enum := range displayToEnum {
		m[enum] = display
	}

	return m
}()

// NormalizeToEnum converts a district display name (e.g. "Quận 1") into its
// enum code (e.g. "QUAN_1"). Unknown names are an error.
func NormalizeToEnum(displayName string) (string, error) {
	enum, ok := displayToEnum[displayName]
	if !ok {
		return "", ErrUnknownBranch
	}

	return enum, nil
}

// DenormalizeFromEnum converts an enum code back into its display name.
// The round trip NormalizeToEnum then DenormalizeFromEnum is the identity
// for every entry in the table.
func DenormalizeFromEnum(enum string) (string, error) {
	display, ok := enumToDisplay[enum]
	if !ok {
		return "", ErrUnknownBranch
	}

	return display, nil
}

// DisplayNames returns the 21 district display names in dropdown order.
func DisplayNames() []string {
	return append([]string(nil), displayOrder...)
}

// Valid reports whether enum is a known branch code.
func Valid(enum string) bool {
	_, ok := enumToDisplay[enum]
	return ok
}

// Same reports whether two branch codes refer to the same branch office.
// Used to scope SC_Admin visibility to its own branch.
func Same(a, b string) bool {
	return a != "" && a == b
}
