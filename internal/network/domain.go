package network

// Domain identifies the physical discipline of a port. Pins may only be
// connected within one domain; the across and through quantities below are
// what a junction equalizes and conserves.
type Domain int

const (
	Electrical Domain = iota
	Magnetic
	Translational
	Rotational
	Thermal
	Hydraulic
)

func (d Domain) String() string {
	switch d {
	case Electrical:
		return "electrical"
	case Magnetic:
		return "magnetic"
	case Translational:
		return "translational"
	case Rotational:
		return "rotational"
	case Thermal:
		return "thermal"
	case Hydraulic:
		return "hydraulic"
	}
	return "unknown"
}

// Across names the domain's potential quantity and unit.
func (d Domain) Across() string {
	switch d {
	case Electrical:
		return "voltage [V]"
	case Magnetic:
		return "magnetomotive force [A]"
	case Translational:
		return "velocity [m/s]"
	case Rotational:
		return "angular velocity [rad/s]"
	case Thermal:
		return "temperature [K]"
	case Hydraulic:
		return "pressure [Pa]"
	}
	return "unknown"
}

// Through names the domain's flow quantity and unit.
func (d Domain) Through() string {
	switch d {
	case Electrical:
		return "current [A]"
	case Magnetic:
		return "magnetic flux [Wb]"
	case Translational:
		return "force [N]"
	case Rotational:
		return "torque [N.m]"
	case Thermal:
		return "heat flow [W]"
	case Hydraulic:
		return "mass flow [kg/s]"
	}
	return "unknown"
}
