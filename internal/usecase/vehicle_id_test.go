package usecase

import (
	"testing"

	"RaptorExplorer/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestVehicleID(t *testing.T) {
	tests := []struct {
		in   models.VehicleDescriptor
		want string
	}{
		{models.VehicleDescriptor{Year: "2019", Make: "Ford", Model: "F-150", Trim: "Raptor"}, "2019_ford_f150_raptor"},
		{models.VehicleDescriptor{Year: "2021", Make: "Land Rover", Model: "Range Rover", Trim: "HSE-Silver Edition"}, "2021_landrover_rangerover_hsesilveredition"},
		{models.VehicleDescriptor{Year: "2020", Make: "Mercedes-Benz", Model: "G 63"}, "2020_mercedes-benz_g63"},
		{models.VehicleDescriptor{Year: "2020", Make: "Ford", Model: "Bronco", Trim: "  "}, "2020_ford_bronco"},
		{models.VehicleDescriptor{Make: "Ford", Model: "F-150"}, "ford_f150"},
	}

	for _, tt := range tests {
		got := VehicleID(tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestVehicleIDIdempotent(t *testing.T) {
	v := models.VehicleDescriptor{Year: "2019", Make: "Ford", Model: "F-150", Trim: "Raptor R"}
	id := VehicleID(v)
	assert.Equal(t, id, VehicleID(v))
}
