package model

// VehicleClass identifies the vehicle category assigned to a service.
type VehicleClass string

const (
	VehicleSmallCar VehicleClass = "small_car"
	VehicleVan15    VehicleClass = "van_15"
	VehicleVan18    VehicleClass = "van_18"
	VehicleMinibus  VehicleClass = "minibus"
	VehicleBus      VehicleClass = "bus"
)

// String returns the string representation of the vehicle class.
func (c VehicleClass) String() string { return string(c) }

// IsValid checks if the vehicle class is one of the known categories.
func (c VehicleClass) IsValid() bool {
	switch c {
	case VehicleSmallCar, VehicleVan15, VehicleVan18, VehicleMinibus, VehicleBus:
		return true
	}
	return false
}

// VehicleForPax returns the smallest vehicle class able to carry the given
// passenger count.
func VehicleForPax(pax int) VehicleClass {
	switch {
	case pax <= 3:
		return VehicleSmallCar
	case pax <= 11:
		return VehicleVan15
	case pax <= 14:
		return VehicleVan18
	case pax <= 26:
		return VehicleMinibus
	default:
		return VehicleBus
	}
}
