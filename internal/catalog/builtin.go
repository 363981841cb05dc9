package catalog

import (
	"phynet/internal/electrical"
	"phynet/internal/hydraulic"
	"phynet/internal/magnetic"
	"phynet/internal/network"
	"phynet/internal/rotational"
	"phynet/internal/thermal"
	"phynet/internal/translational"
)

// Default returns a registry carrying every builtin component type. Type
// names are "<domain>.<type>" so catalogs from different domains never
// collide.
func Default() *Registry {
	r := NewRegistry()
	registerElectrical(r)
	registerTranslational(r)
	registerRotational(r)
	registerThermal(r)
	registerHydraulic(r)
	registerMagnetic(r)
	return r
}

func registerElectrical(r *Registry) {
	d := network.Electrical

	r.Register(Entry{"electrical.ground", d, "reference node pinned to zero volts", func(name string, p *Params) (network.Component, error) {
		return electrical.NewGround(name), nil
	}})
	r.Register(Entry{"electrical.resistor", d, "linear resistor", func(name string, p *Params) (network.Component, error) {
		ohms, err := p.Float("resistance")
		if err != nil {
			return nil, err
		}
		return electrical.NewResistor(name, ohms), nil
	}})
	r.Register(Entry{"electrical.conductor", d, "linear conductor", func(name string, p *Params) (network.Component, error) {
		g, err := p.Float("conductance")
		if err != nil {
			return nil, err
		}
		return electrical.NewConductor(name, g), nil
	}})
	r.Register(Entry{"electrical.short", d, "ideal zero-volt connection", func(name string, p *Params) (network.Component, error) {
		return electrical.NewShort(name), nil
	}})
	r.Register(Entry{"electrical.capacitor", d, "linear capacitor", func(name string, p *Params) (network.Component, error) {
		farads, err := p.Float("capacitance")
		if err != nil {
			return nil, err
		}
		c := electrical.NewCapacitor(name, farads)
		if c.InitialVoltage, err = p.FloatOr("initial_voltage", 0); err != nil {
			return nil, err
		}
		return c, nil
	}})
	r.Register(Entry{"electrical.inductor", d, "linear inductor", func(name string, p *Params) (network.Component, error) {
		henry, err := p.Float("inductance")
		if err != nil {
			return nil, err
		}
		l := electrical.NewInductor(name, henry)
		if l.InitialCurrent, err = p.FloatOr("initial_current", 0); err != nil {
			return nil, err
		}
		return l, nil
	}})
	r.Register(Entry{"electrical.voltage_source", d, "waveform-driven voltage source", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("voltage")
		if err != nil {
			return nil, err
		}
		return electrical.NewVoltageSource(name, w), nil
	}})
	r.Register(Entry{"electrical.current_source", d, "waveform-driven current source", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("current")
		if err != nil {
			return nil, err
		}
		return electrical.NewCurrentSource(name, w), nil
	}})
	r.Register(Entry{"electrical.diode", d, "exponential diode, newton-linearized", func(name string, p *Params) (network.Component, error) {
		dd := electrical.NewDiode(name)
		var err error
		if dd.SaturationCurrent, err = p.FloatOr("saturation_current", dd.SaturationCurrent); err != nil {
			return nil, err
		}
		if dd.EmissionCoefficient, err = p.FloatOr("emission_coefficient", dd.EmissionCoefficient); err != nil {
			return nil, err
		}
		return dd, nil
	}})
	r.Register(Entry{"electrical.opamp", d, "ideal operational amplifier", func(name string, p *Params) (network.Component, error) {
		return electrical.NewIdealOpAmp(name), nil
	}})
	r.Register(Entry{"electrical.vcvs", d, "voltage-controlled voltage source", func(name string, p *Params) (network.Component, error) {
		gain, err := p.Float("gain")
		if err != nil {
			return nil, err
		}
		return electrical.NewVCVS(name, gain), nil
	}})
	r.Register(Entry{"electrical.vccs", d, "voltage-controlled current source", func(name string, p *Params) (network.Component, error) {
		gain, err := p.Float("gain")
		if err != nil {
			return nil, err
		}
		return electrical.NewVCCS(name, gain), nil
	}})
	r.Register(Entry{"electrical.cccs", d, "current-controlled current source", func(name string, p *Params) (network.Component, error) {
		gain, err := p.Float("gain")
		if err != nil {
			return nil, err
		}
		sensor, err := p.String("sensor")
		if err != nil {
			return nil, err
		}
		s := electrical.NewCCCS(name, gain, nil)
		s.SensorName = sensor
		return s, nil
	}})
	r.Register(Entry{"electrical.ccvs", d, "current-controlled voltage source", func(name string, p *Params) (network.Component, error) {
		gain, err := p.Float("gain")
		if err != nil {
			return nil, err
		}
		sensor, err := p.String("sensor")
		if err != nil {
			return nil, err
		}
		s := electrical.NewCCVS(name, gain, nil)
		s.SensorName = sensor
		return s, nil
	}})
	r.Register(Entry{"electrical.emf", d, "electromechanical converter to a rotational flange", func(name string, p *Params) (network.Component, error) {
		k, err := p.Float("k")
		if err != nil {
			return nil, err
		}
		return electrical.NewEMF(name, k), nil
	}})
	r.Register(Entry{"electrical.heating_resistor", d, "resistor dissipating i^2 R into a heat port", func(name string, p *Params) (network.Component, error) {
		ohms, err := p.Float("resistance")
		if err != nil {
			return nil, err
		}
		h := electrical.NewHeatingResistor(name, ohms)
		if h.TempCoeff, err = p.FloatOr("temp_coeff", 0); err != nil {
			return nil, err
		}
		if h.ReferenceTemp, err = p.FloatOr("reference_temp", h.ReferenceTemp); err != nil {
			return nil, err
		}
		return h, nil
	}})
	r.Register(Entry{"electrical.current_sensor", d, "ideal ammeter, current becomes a labeled unknown", func(name string, p *Params) (network.Component, error) {
		return electrical.NewCurrentSensor(name), nil
	}})
	r.Register(Entry{"electrical.potential_sensor", d, "ideal voltmeter, draws no current", func(name string, p *Params) (network.Component, error) {
		return electrical.NewPotentialSensor(name), nil
	}})
}

func registerTranslational(r *Registry) {
	d := network.Translational

	r.Register(Entry{"translational.fixed", d, "zero-velocity mechanical reference", func(name string, p *Params) (network.Component, error) {
		return translational.NewFixed(name), nil
	}})
	r.Register(Entry{"translational.mass", d, "sliding point mass", func(name string, p *Params) (network.Component, error) {
		kg, err := p.Float("mass")
		if err != nil {
			return nil, err
		}
		m := translational.NewMass(name, kg)
		if m.InitialVelocity, err = p.FloatOr("initial_velocity", 0); err != nil {
			return nil, err
		}
		return m, nil
	}})
	r.Register(Entry{"translational.spring", d, "linear spring", func(name string, p *Params) (network.Component, error) {
		k, err := p.Float("stiffness")
		if err != nil {
			return nil, err
		}
		s := translational.NewSpring(name, k)
		if s.InitialDisplacement, err = p.FloatOr("initial_displacement", 0); err != nil {
			return nil, err
		}
		return s, nil
	}})
	r.Register(Entry{"translational.damper", d, "linear viscous damper", func(name string, p *Params) (network.Component, error) {
		dd, err := p.Float("damping")
		if err != nil {
			return nil, err
		}
		return translational.NewDamper(name, dd), nil
	}})
	r.Register(Entry{"translational.spring_damper", d, "spring and damper in parallel", func(name string, p *Params) (network.Component, error) {
		k, err := p.Float("stiffness")
		if err != nil {
			return nil, err
		}
		dd, err := p.Float("damping")
		if err != nil {
			return nil, err
		}
		return translational.NewSpringDamper(name, k, dd), nil
	}})
	r.Register(Entry{"translational.force_source", d, "waveform-driven force", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("force")
		if err != nil {
			return nil, err
		}
		return translational.NewForceSource(name, w), nil
	}})
	r.Register(Entry{"translational.speed_source", d, "waveform-driven velocity", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("speed")
		if err != nil {
			return nil, err
		}
		return translational.NewSpeedSource(name, w), nil
	}})
	r.Register(Entry{"translational.friction", d, "smoothed coulomb plus viscous friction", func(name string, p *Params) (network.Component, error) {
		brk, err := p.Float("breakaway")
		if err != nil {
			return nil, err
		}
		f := translational.NewFriction(name, brk)
		if f.ViscousCoeff, err = p.FloatOr("viscous", f.ViscousCoeff); err != nil {
			return nil, err
		}
		if f.ReferenceVelocity, err = p.FloatOr("reference_velocity", f.ReferenceVelocity); err != nil {
			return nil, err
		}
		return f, nil
	}})
	r.Register(Entry{"translational.force_sensor", d, "ideal force sensor", func(name string, p *Params) (network.Component, error) {
		return translational.NewForceSensor(name), nil
	}})
	r.Register(Entry{"translational.speed_sensor", d, "ideal velocity sensor", func(name string, p *Params) (network.Component, error) {
		return translational.NewSpeedSensor(name), nil
	}})
}

func registerRotational(r *Registry) {
	d := network.Rotational

	r.Register(Entry{"rotational.fixed", d, "zero-speed rotational reference", func(name string, p *Params) (network.Component, error) {
		return rotational.NewFixed(name), nil
	}})
	r.Register(Entry{"rotational.inertia", d, "rotating inertia", func(name string, p *Params) (network.Component, error) {
		j, err := p.Float("inertia")
		if err != nil {
			return nil, err
		}
		in := rotational.NewInertia(name, j)
		if in.InitialVelocity, err = p.FloatOr("initial_velocity", 0); err != nil {
			return nil, err
		}
		return in, nil
	}})
	r.Register(Entry{"rotational.spring", d, "torsion spring", func(name string, p *Params) (network.Component, error) {
		k, err := p.Float("stiffness")
		if err != nil {
			return nil, err
		}
		s := rotational.NewTorsionSpring(name, k)
		if s.InitialTwist, err = p.FloatOr("initial_twist", 0); err != nil {
			return nil, err
		}
		return s, nil
	}})
	r.Register(Entry{"rotational.damper", d, "rotational viscous damper", func(name string, p *Params) (network.Component, error) {
		dd, err := p.Float("damping")
		if err != nil {
			return nil, err
		}
		return rotational.NewDamper(name, dd), nil
	}})
	r.Register(Entry{"rotational.spring_damper", d, "torsion spring and damper in parallel", func(name string, p *Params) (network.Component, error) {
		k, err := p.Float("stiffness")
		if err != nil {
			return nil, err
		}
		dd, err := p.Float("damping")
		if err != nil {
			return nil, err
		}
		return rotational.NewSpringDamper(name, k, dd), nil
	}})
	r.Register(Entry{"rotational.torque_source", d, "waveform-driven torque", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("torque")
		if err != nil {
			return nil, err
		}
		return rotational.NewTorqueSource(name, w), nil
	}})
	r.Register(Entry{"rotational.speed_source", d, "waveform-driven angular velocity", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("speed")
		if err != nil {
			return nil, err
		}
		return rotational.NewSpeedSource(name, w), nil
	}})
	r.Register(Entry{"rotational.gear", d, "ideal gear pair", func(name string, p *Params) (network.Component, error) {
		ratio, err := p.Float("ratio")
		if err != nil {
			return nil, err
		}
		return rotational.NewIdealGear(name, ratio), nil
	}})
	r.Register(Entry{"rotational.bearing_friction", d, "smoothed bearing friction", func(name string, p *Params) (network.Component, error) {
		brk, err := p.Float("breakaway")
		if err != nil {
			return nil, err
		}
		f := rotational.NewBearingFriction(name, brk)
		if f.ViscousCoeff, err = p.FloatOr("viscous", f.ViscousCoeff); err != nil {
			return nil, err
		}
		if f.ReferenceVelocity, err = p.FloatOr("reference_velocity", f.ReferenceVelocity); err != nil {
			return nil, err
		}
		return f, nil
	}})
	r.Register(Entry{"rotational.torque_sensor", d, "ideal torque sensor", func(name string, p *Params) (network.Component, error) {
		return rotational.NewTorqueSensor(name), nil
	}})
	r.Register(Entry{"rotational.speed_sensor", d, "ideal angular velocity sensor", func(name string, p *Params) (network.Component, error) {
		return rotational.NewSpeedSensor(name), nil
	}})
}

func registerThermal(r *Registry) {
	d := network.Thermal

	r.Register(Entry{"thermal.heat_capacitor", d, "lumped thermal mass", func(name string, p *Params) (network.Component, error) {
		c, err := p.Float("capacity")
		if err != nil {
			return nil, err
		}
		hc := thermal.NewHeatCapacitor(name, c)
		if hc.InitialTemperature, err = p.FloatOr("initial_temperature", hc.InitialTemperature); err != nil {
			return nil, err
		}
		return hc, nil
	}})
	r.Register(Entry{"thermal.conductor", d, "thermal conductance", func(name string, p *Params) (network.Component, error) {
		g, err := p.Float("conductance")
		if err != nil {
			return nil, err
		}
		return thermal.NewConductor(name, g), nil
	}})
	r.Register(Entry{"thermal.resistor", d, "thermal resistance", func(name string, p *Params) (network.Component, error) {
		rr, err := p.Float("resistance")
		if err != nil {
			return nil, err
		}
		return thermal.NewResistor(name, rr), nil
	}})
	r.Register(Entry{"thermal.convection", d, "convective exchange with variable conductance", func(name string, p *Params) (network.Component, error) {
		gc, err := p.Waveform("conductance")
		if err != nil {
			return nil, err
		}
		return thermal.NewConvection(name, gc), nil
	}})
	r.Register(Entry{"thermal.radiation", d, "grey-body radiation exchange", func(name string, p *Params) (network.Component, error) {
		g, err := p.Float("g")
		if err != nil {
			return nil, err
		}
		return thermal.NewBodyRadiation(name, g), nil
	}})
	r.Register(Entry{"thermal.fixed_temperature", d, "ideal temperature source", func(name string, p *Params) (network.Component, error) {
		t, err := p.Float("temperature")
		if err != nil {
			return nil, err
		}
		return thermal.NewFixedTemperature(name, t), nil
	}})
	r.Register(Entry{"thermal.heat_flow_source", d, "waveform-driven heat flow", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("heat_flow")
		if err != nil {
			return nil, err
		}
		return thermal.NewHeatFlowSource(name, w), nil
	}})
	r.Register(Entry{"thermal.heat_flow_sensor", d, "ideal heat flow sensor", func(name string, p *Params) (network.Component, error) {
		return thermal.NewHeatFlowSensor(name), nil
	}})
	r.Register(Entry{"thermal.temperature_sensor", d, "ideal temperature sensor", func(name string, p *Params) (network.Component, error) {
		return thermal.NewTemperatureSensor(name), nil
	}})
}

func registerHydraulic(r *Registry) {
	d := network.Hydraulic

	r.Register(Entry{"hydraulic.fixed_pressure", d, "ideal pressure source", func(name string, p *Params) (network.Component, error) {
		pa, err := p.Float("pressure")
		if err != nil {
			return nil, err
		}
		return hydraulic.NewFixedPressure(name, pa), nil
	}})
	r.Register(Entry{"hydraulic.flow_source", d, "waveform-driven mass flow", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("flow")
		if err != nil {
			return nil, err
		}
		return hydraulic.NewMassFlowSource(name, w), nil
	}})
	r.Register(Entry{"hydraulic.volume", d, "compressible fluid volume", func(name string, p *Params) (network.Component, error) {
		v, err := p.Float("volume")
		if err != nil {
			return nil, err
		}
		vol := hydraulic.NewVolume(name, v)
		if vol.Density, err = p.FloatOr("density", vol.Density); err != nil {
			return nil, err
		}
		if vol.BulkModulus, err = p.FloatOr("bulk_modulus", vol.BulkModulus); err != nil {
			return nil, err
		}
		if vol.InitialPressure, err = p.FloatOr("initial_pressure", vol.InitialPressure); err != nil {
			return nil, err
		}
		return vol, nil
	}})
	r.Register(Entry{"hydraulic.pipe", d, "darcy-weisbach pipe with blended friction factor", func(name string, p *Params) (network.Component, error) {
		length, err := p.Float("length")
		if err != nil {
			return nil, err
		}
		dia, err := p.Float("diameter")
		if err != nil {
			return nil, err
		}
		pipe := hydraulic.NewPipe(name, length, dia)
		if pipe.Density, err = p.FloatOr("density", pipe.Density); err != nil {
			return nil, err
		}
		if pipe.Viscosity, err = p.FloatOr("viscosity", pipe.Viscosity); err != nil {
			return nil, err
		}
		return pipe, nil
	}})
	r.Register(Entry{"hydraulic.orifice", d, "regularized square-root orifice", func(name string, p *Params) (network.Component, error) {
		area, err := p.Float("area")
		if err != nil {
			return nil, err
		}
		o := hydraulic.NewOrifice(name, area)
		if o.DischargeCoeff, err = p.FloatOr("discharge_coeff", o.DischargeCoeff); err != nil {
			return nil, err
		}
		if o.Density, err = p.FloatOr("density", o.Density); err != nil {
			return nil, err
		}
		return o, nil
	}})
	r.Register(Entry{"hydraulic.valve", d, "orifice scaled by commanded opening", func(name string, p *Params) (network.Component, error) {
		area, err := p.Float("area")
		if err != nil {
			return nil, err
		}
		opening, err := p.Waveform("opening")
		if err != nil {
			return nil, err
		}
		v := hydraulic.NewValve(name, area, opening)
		if v.DischargeCoeff, err = p.FloatOr("discharge_coeff", v.DischargeCoeff); err != nil {
			return nil, err
		}
		if v.Density, err = p.FloatOr("density", v.Density); err != nil {
			return nil, err
		}
		return v, nil
	}})
	r.Register(Entry{"hydraulic.flow_sensor", d, "ideal mass flow sensor", func(name string, p *Params) (network.Component, error) {
		return hydraulic.NewFlowSensor(name), nil
	}})
	r.Register(Entry{"hydraulic.pressure_sensor", d, "ideal pressure sensor", func(name string, p *Params) (network.Component, error) {
		return hydraulic.NewPressureSensor(name), nil
	}})
}

func registerMagnetic(r *Registry) {
	d := network.Magnetic

	r.Register(Entry{"magnetic.ground", d, "magnetic potential reference", func(name string, p *Params) (network.Component, error) {
		return magnetic.NewGround(name), nil
	}})
	r.Register(Entry{"magnetic.reluctance", d, "constant reluctance flux tube", func(name string, p *Params) (network.Component, error) {
		rm, err := p.Float("reluctance")
		if err != nil {
			return nil, err
		}
		return magnetic.NewReluctance(name, rm), nil
	}})
	r.Register(Entry{"magnetic.geometric_reluctance", d, "reluctance from path geometry and permeability", func(name string, p *Params) (network.Component, error) {
		length, err := p.Float("length")
		if err != nil {
			return nil, err
		}
		area, err := p.Float("area")
		if err != nil {
			return nil, err
		}
		mur, err := p.FloatOr("relative_permeability", 1)
		if err != nil {
			return nil, err
		}
		return magnetic.NewGeometricReluctance(name, length, area, mur), nil
	}})
	r.Register(Entry{"magnetic.eddy_current", d, "eddy current loss element", func(name string, p *Params) (network.Component, error) {
		g, err := p.Float("conductance")
		if err != nil {
			return nil, err
		}
		return magnetic.NewEddyCurrent(name, g), nil
	}})
	r.Register(Entry{"magnetic.mmf_source", d, "waveform-driven magnetomotive force", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("mmf")
		if err != nil {
			return nil, err
		}
		return magnetic.NewMMFSource(name, w), nil
	}})
	r.Register(Entry{"magnetic.flux_source", d, "waveform-driven flux", func(name string, p *Params) (network.Component, error) {
		w, err := p.Waveform("flux")
		if err != nil {
			return nil, err
		}
		return magnetic.NewFluxSource(name, w), nil
	}})
	r.Register(Entry{"magnetic.converter", d, "electromagnetic converter coupling a coil to a flux tube", func(name string, p *Params) (network.Component, error) {
		turns, err := p.Float("turns")
		if err != nil {
			return nil, err
		}
		return magnetic.NewConverter(name, turns), nil
	}})
}
