package usecase

import (
	"strings"

	"RaptorExplorer/internal/domain/models"
)

// VehicleID formats the composite identifier used by the aggregate provider
// and as the analytics partition key: year_make_model_trim, lower-cased,
// without whitespace, and with hyphens removed from model and trim. Empty
// components are omitted.
func VehicleID(v models.VehicleDescriptor) string {
	parts := make([]string, 0, 4)
	add := func(s string, dropHyphens bool) {
		s = strings.ToLower(strings.Join(strings.Fields(s), ""))
		if dropHyphens {
			s = strings.ReplaceAll(s, "-", "")
		}
		if s != "" {
			parts = append(parts, s)
		}
	}

	add(v.Year, false)
	add(v.Make, false)
	add(v.Model, true)
	add(v.Trim, true)
	return strings.Join(parts, "_")
}
