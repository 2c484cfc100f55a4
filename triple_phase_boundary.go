package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

/*
Configuration of a triple phase boundary model, supplied once at
construction and immutable afterwards. Variable fields left nil are
created fresh and owned by the model; non-nil fields bind to variables
owned by the enclosing cell model.
*/
type TriplePhaseBoundaryConfig struct {
	Name string

	// time points, each solved as an independent steady state
	TimeSet []float64

	// z positions of the control volume faces, dimensionless
	ControlVolumeZfaces []float64

	ComponentList         []string
	ComponentListFuel     []string
	ComponentListAcid     []string
	ReactionStoichiometry map[string]float64
	InertSpecies          []string

	// whether the boundary sits below or above the electrolyte; flips the
	// sign convention of the material flux
	BelowElectrolyte bool

	// add a voltage_drop_custom variable to be connected to degradation
	// models
	VoltageDropCustom bool

	// pure-component correlations; nil selects the built-in table
	Thermo *ThermoDB

	// optional bindings to variables owned by the enclosing cell model
	TemperatureZ              *Var
	HeatFluxX0                *Var
	HeatFluxX1                *Var
	CurrentDensity            *Var
	ConcMolCompRefFuel        *Var
	ConcMolCompRefAcid        *Var
	ConcMolCompDeviationXFuel *Var
	ConcMolCompDeviationXAcid *Var
	MaterialFluxXFuel         *Var
	MaterialFluxXAcid         *Var
}

/*
Model of the triple phase boundary between a bulk transport channel and
the electron/ion conducting electrode, coupling Butler-Volmer kinetics,
species transport and the boundary energy balance into one algebraic
system per node. There are no holdups and no internal dynamics; every
per-node quantity is defined for every (time, node) pair and the node
ordering is fixed for the lifetime of the model.
*/
type TriplePhaseBoundary struct {
	name     string
	config   TriplePhaseBoundaryConfig
	registry *SpeciesRegistry
	thermo   *ThermoDB

	tset    []float64
	zfaces  []float64
	iznodes []int

	// thermal boundary conditions
	temperature_z           VarRef // channel side boundary temperature, K, [t, iz]
	temperature_deviation_x *Var   // local temperature deviation, K, [t, iz]
	heat_flux_x0            VarRef // incoming heat flux, W/m2, [t, iz]
	heat_flux_x1            VarRef // outgoing heat flux, W/m2, [t, iz]

	current_density VarRef // A/m2, [t, iz]

	// cell dimensions used by the enclosing cell model, m
	length_y *ScalarVar
	length_z *ScalarVar

	// bulk concentrations and local deviations per side, mol/m3, [t, iz, j]
	conc_mol_comp_ref_fuel         VarRef
	conc_mol_comp_ref_acid         VarRef
	conc_mol_comp_deviation_x_fuel VarRef
	conc_mol_comp_deviation_x_acid VarRef

	// material fluxes per side, mol/(s m2), [t, iz, j]
	material_flux_x_fuel VarRef
	material_flux_x_acid VarRef

	// fixed scalar operating temperature for the kinetic correlations, K.
	// The local boundary temperature is numerically difficult to solve
	// for, so the kinetics are deliberately evaluated at this fixed value.
	operating_temperature *ScalarVar

	mole_frac_comp       *Var // -, [t, iz, j], bounds [0, 1]
	log_mole_frac_comp   *Var // -, [t, iz, j reacting gas], bound <= 0
	activation_potential *Var // V, [t, iz], bounds (-6, 0)

	activation_potential_alpha1 *ScalarVar
	activation_potential_alpha2 *ScalarVar

	// per-species reaction order exponents in the exchange current
	// density correlation, dimensionless, >= 0
	exchange_current_exponent_comp map[string]*ScalarVar

	// log of the preexponential factor in A/m2, dimensionless
	exchange_current_log_preexponential_factor *ScalarVar

	// activation energy, J/mol
	exchange_current_activation_energy *ScalarVar

	// pass-through degradation term, V, [t, iz]; nil unless configured
	voltage_drop_custom *Var

	mole_frac_comp_eqn       [][][]*Equation // [t][iz][c], c over component_list
	log_mole_frac_comp_eqn   [][][]*Equation // [t][iz][c], c over reacting_gas_list
	activation_potential_eqn [][]*Equation   // [t][iz]
	heat_flux_x_eqn          [][]*Equation   // [t][iz]
	material_flux_x_eqn      [][][]*Equation // [t][iz][c], c over component_list

	system *System
}

/*
Builds the triple phase boundary model.

	Args:
	    config: species lists, stoichiometry, inert list, bindings and
	        flags; immutable after this call.

	Returns:
	    the built model, or a configuration error naming the offending
	    species or model. Configuration errors abort construction and are
	    never retried.
*/
func NewTriplePhaseBoundary(config TriplePhaseBoundaryConfig) (*TriplePhaseBoundary, error) {
	name := config.Name
	if name == "" {
		name = "triple_phase_boundary"
	}

	registry, err := NewSpeciesRegistry(
		name,
		config.ComponentList,
		config.ComponentListFuel,
		config.ComponentListAcid,
		config.ReactionStoichiometry,
		config.InertSpecies,
	)
	if err != nil {
		return nil, err
	}

	thermo := config.Thermo
	if thermo == nil {
		thermo = default_thermo_db()
	}
	for _, j := range registry.reacting_component_list {
		if !thermo.has_species(j) {
			return nil, fmt.Errorf(
				"%s: no thermodynamic coefficients for reacting component %s", name, j,
			)
		}
	}

	tset := config.TimeSet
	if len(tset) == 0 {
		tset = []float64{0.0}
	}
	zfaces := config.ControlVolumeZfaces
	if len(zfaces) < 2 {
		return nil, fmt.Errorf("%s: control_volume_zfaces requires at least two faces", name)
	}
	nt := len(tset)
	nz := len(zfaces) - 1
	iznodes := make([]int, nz)
	for i := range iznodes {
		iznodes[i] = i
	}

	b := &TriplePhaseBoundary{
		name:     name,
		config:   config,
		registry: registry,
		thermo:   thermo,
		tset:     tset,
		zfaces:   zfaces,
		iznodes:  iznodes,
		system:   &System{},
	}

	ninf := math.Inf(-1)
	pinf := math.Inf(1)

	// Boundary condition variables: borrowed from the cell model when a
	// binding is supplied, otherwise created as fixed owned inputs.
	b.temperature_z = _create_if_none(config.TemperatureZ, "temperature_z", nt, nz, nil, 298.15, true)
	b.temperature_deviation_x = NewVar("temperature_deviation_x", nt, nz, nil, 0.0, ninf, pinf)
	b.temperature_deviation_x.fix()
	b.heat_flux_x0 = _create_if_none(config.HeatFluxX0, "heat_flux_x0", nt, nz, nil, 0.0, false)
	b.heat_flux_x1 = _create_if_none(config.HeatFluxX1, "heat_flux_x1", nt, nz, nil, 0.0, false)
	b.current_density = _create_if_none(config.CurrentDensity, "current_density", nt, nz, nil, 0.0, true)
	b.length_y = NewScalarVar("length_y", 1.0, 0.0, pinf)
	b.length_y.fix()
	b.length_z = NewScalarVar("length_z", 1.0, 0.0, pinf)
	b.length_z.fix()

	b.conc_mol_comp_ref_fuel = _create_if_none(
		config.ConcMolCompRefFuel, "conc_mol_comp_ref_fuel", nt, nz, registry.component_list_fuel, 1.0, true)
	b.conc_mol_comp_ref_acid = _create_if_none(
		config.ConcMolCompRefAcid, "conc_mol_comp_ref_acid", nt, nz, registry.component_list_acid, 1.0, true)
	b.conc_mol_comp_deviation_x_fuel = _create_if_none(
		config.ConcMolCompDeviationXFuel, "conc_mol_comp_deviation_x_fuel", nt, nz, registry.component_list_fuel, 0.0, true)
	b.conc_mol_comp_deviation_x_acid = _create_if_none(
		config.ConcMolCompDeviationXAcid, "conc_mol_comp_deviation_x_acid", nt, nz, registry.component_list_acid, 0.0, true)

	// fluxes for the fuel and the acid channel are separate variables so
	// they can serve as individual boundary conditions
	b.material_flux_x_fuel = _create_if_none(
		config.MaterialFluxXFuel, "material_flux_x_fuel", nt, nz, registry.component_list_fuel, 0.0, false)
	b.material_flux_x_acid = _create_if_none(
		config.MaterialFluxXAcid, "material_flux_x_acid", nt, nz, registry.component_list_acid, 0.0, false)

	b.operating_temperature = NewScalarVar("operating_temperature", 298.15, 0.0, pinf)
	b.operating_temperature.fix()

	// mole_frac_comp is a variable rather than a derived value so the
	// solver can enforce the lower bound of 0
	b.mole_frac_comp = NewVar(
		"mole_frac_comp", nt, nz, registry.component_list, 1.0/float64(len(registry.component_list)), 0.0, 1.0)
	b.log_mole_frac_comp = NewVar(
		"log_mole_frac_comp", nt, nz, registry.reacting_gas_list, -1.0, ninf, 0.0)
	b.activation_potential = NewVar("activation_potential", nt, nz, nil, -1.0, -6.0, 0.0)

	b.activation_potential_alpha1 = NewScalarVar("activation_potential_alpha1", 0.5, 0.0, pinf)
	b.activation_potential_alpha1.fix()
	b.activation_potential_alpha2 = NewScalarVar("activation_potential_alpha2", 0.5, 0.0, pinf)
	b.activation_potential_alpha2.fix()

	b.exchange_current_exponent_comp = make(map[string]*ScalarVar, len(registry.reacting_gas_list))
	for _, j := range registry.reacting_gas_list {
		v := NewScalarVar(fmt.Sprintf("exchange_current_exponent_comp[%s]", j), 1.0, 0.0, pinf)
		v.fix()
		b.exchange_current_exponent_comp[j] = v
	}
	b.exchange_current_log_preexponential_factor = NewScalarVar(
		"exchange_current_log_preexponential_factor", 1.0, 0.0, pinf)
	b.exchange_current_log_preexponential_factor.fix()
	b.exchange_current_activation_energy = NewScalarVar(
		"exchange_current_activation_energy", 0.0, 0.0, pinf)
	b.exchange_current_activation_energy.fix()

	if config.VoltageDropCustom {
		// no internal constraint: a degradation model fixes or links it
		b.voltage_drop_custom = NewVar("voltage_drop_custom", nt, nz, nil, 0.0, ninf, pinf)
		b.voltage_drop_custom.fix()
	}

	b._register_vars()
	b._build_equations()

	return b, nil
}

func (b *TriplePhaseBoundary) _register_vars() {
	sys := b.system
	sys.add_var(b.temperature_z.Var)
	sys.add_var(b.temperature_deviation_x)
	sys.add_var(b.heat_flux_x0.Var)
	sys.add_var(b.heat_flux_x1.Var)
	sys.add_var(b.current_density.Var)
	sys.add_var(b.conc_mol_comp_ref_fuel.Var)
	sys.add_var(b.conc_mol_comp_ref_acid.Var)
	sys.add_var(b.conc_mol_comp_deviation_x_fuel.Var)
	sys.add_var(b.conc_mol_comp_deviation_x_acid.Var)
	sys.add_var(b.material_flux_x_fuel.Var)
	sys.add_var(b.material_flux_x_acid.Var)
	sys.add_var(b.mole_frac_comp)
	sys.add_var(b.log_mole_frac_comp)
	sys.add_var(b.activation_potential)
	if b.voltage_drop_custom != nil {
		sys.add_var(b.voltage_drop_custom)
	}
	sys.add_scalar(b.length_y)
	sys.add_scalar(b.length_z)
	sys.add_scalar(b.operating_temperature)
	sys.add_scalar(b.activation_potential_alpha1)
	sys.add_scalar(b.activation_potential_alpha2)
	for _, j := range b.registry.reacting_gas_list {
		sys.add_scalar(b.exchange_current_exponent_comp[j])
	}
	sys.add_scalar(b.exchange_current_log_preexponential_factor)
	sys.add_scalar(b.exchange_current_activation_energy)
}

func (b *TriplePhaseBoundary) _build_equations() {
	nt := len(b.tset)
	nz := len(b.iznodes)

	b.mole_frac_comp_eqn = make([][][]*Equation, nt)
	b.log_mole_frac_comp_eqn = make([][][]*Equation, nt)
	b.activation_potential_eqn = make([][]*Equation, nt)
	b.heat_flux_x_eqn = make([][]*Equation, nt)
	b.material_flux_x_eqn = make([][][]*Equation, nt)

	for t := 0; t < nt; t++ {
		b.mole_frac_comp_eqn[t] = make([][]*Equation, nz)
		b.log_mole_frac_comp_eqn[t] = make([][]*Equation, nz)
		b.activation_potential_eqn[t] = make([]*Equation, nz)
		b.heat_flux_x_eqn[t] = make([]*Equation, nz)
		b.material_flux_x_eqn[t] = make([][]*Equation, nz)

		for iz := 0; iz < nz; iz++ {
			tt := t
			zz := iz

			b.mole_frac_comp_eqn[t][iz] = make([]*Equation, len(b.registry.component_list))
			for c, j := range b.registry.component_list {
				jj := j
				b.mole_frac_comp_eqn[t][iz][c] = b.system.add_eqn(&Equation{
					name: fmt.Sprintf("mole_frac_comp_eqn[%d,%d,%s]", t, iz, j),
					resid: func() float64 {
						return b.mole_frac_comp.at_comp(tt, zz, jj) -
							b.conc_mol_comp(tt, zz, jj)/b.conc_mol_total(tt, zz)
					},
				})
			}

			b.log_mole_frac_comp_eqn[t][iz] = make([]*Equation, len(b.registry.reacting_gas_list))
			for c, j := range b.registry.reacting_gas_list {
				jj := j
				b.log_mole_frac_comp_eqn[t][iz][c] = b.system.add_eqn(&Equation{
					name: fmt.Sprintf("log_mole_frac_comp_eqn[%d,%d,%s]", t, iz, j),
					resid: func() float64 {
						return b.mole_frac_comp.at_comp(tt, zz, jj) -
							math.Exp(b.log_mole_frac_comp.at_comp(tt, zz, jj))
					},
				})
			}

			// Butler-Volmer equation
			b.activation_potential_eqn[t][iz] = b.system.add_eqn(&Equation{
				name: fmt.Sprintf("activation_potential_eqn[%d,%d]", t, iz),
				resid: func() float64 {
					i := b.current_density.at(tt, zz)
					log_i0 := b.log_exchange_current_density(tt, zz)
					eta := b.activation_potential.at(tt, zz)
					temperature := b.operating_temperature.value
					alpha_1 := b.activation_potential_alpha1.value
					alpha_2 := b.activation_potential_alpha2.value
					exp_expr := get_faraday_constant() * eta / (get_gas_constant() * temperature)
					return i - (_exp_guarded(log_i0+alpha_1*exp_expr) - _exp_guarded(log_i0-alpha_2*exp_expr))
				},
			})

			// resistive heating plus the reversible heat of reaction;
			// dropping either term silently changes the stack energy balance
			b.heat_flux_x_eqn[t][iz] = b.system.add_eqn(&Equation{
				name: fmt.Sprintf("heat_flux_x_eqn[%d,%d]", t, iz),
				resid: func() float64 {
					return b.heat_flux_x1.at(tt, zz) -
						(b.heat_flux_x0.at(tt, zz) +
							b.current_density.at(tt, zz)*b.voltage_drop_total(tt, zz) -
							b.reaction_rate_per_unit_area(tt, zz)*b.temperature(tt, zz)*b.ds_rxn(tt, zz))
				},
			})

			b.material_flux_x_eqn[t][iz] = make([]*Equation, len(b.registry.component_list))
			for c, j := range b.registry.component_list {
				jj := j
				var resid func() float64
				if b.registry.is_fuel_species(j) {
					resid = func() float64 {
						return b.material_flux_x_fuel.at_comp(tt, zz, jj) -
							(-b.reaction_rate_per_unit_area(tt, zz) *
								b.registry.reaction_stoichiometry[jj])
					}
				} else {
					resid = func() float64 {
						return b.material_flux_x_acid.at_comp(tt, zz, jj) -
							b.reaction_rate_per_unit_area(tt, zz)*
								b.registry.reaction_stoichiometry[jj]
					}
				}
				b.material_flux_x_eqn[t][iz][c] = b.system.add_eqn(&Equation{
					name:  fmt.Sprintf("material_flux_x_eqn[%d,%d,%s]", t, iz, j),
					resid: resid,
				})
			}
		}
	}
}

// temperature at the boundary, K
func (b *TriplePhaseBoundary) temperature(t, iz int) float64 {
	return b.temperature_z.at(t, iz) + b.temperature_deviation_x.at(t, iz)
}

// total concentration of species j: side-specific bulk reference plus the
// local deviation on the same side, mol/m3
func (b *TriplePhaseBoundary) conc_mol_comp(t, iz int, j string) float64 {
	if b.registry.is_fuel_species(j) {
		return b.conc_mol_comp_ref_fuel.at_comp(t, iz, j) +
			b.conc_mol_comp_deviation_x_fuel.at_comp(t, iz, j)
	}
	return b.conc_mol_comp_ref_acid.at_comp(t, iz, j) +
		b.conc_mol_comp_deviation_x_acid.at_comp(t, iz, j)
}

func (b *TriplePhaseBoundary) conc_mol_total(t, iz int) float64 {
	terms := make([]float64, len(b.registry.component_list))
	for c, j := range b.registry.component_list {
		terms[c] = b.conc_mol_comp(t, iz, j)
	}
	return floats.Sum(terms)
}

// total pressure by the ideal gas law, Pa
func (b *TriplePhaseBoundary) pressure(t, iz int) float64 {
	return b.conc_mol_total(t, iz) * get_gas_constant() * b.temperature(t, iz)
}

/*
Entropy of reaction at the node, J/(mol K). Species absent from the
component list are assumed not to be vapor phase and contribute no
pressure correction; a net gas-phase coefficient sum below the threshold
zeroes the pressure term exactly instead of leaving numerical noise.
*/
func (b *TriplePhaseBoundary) ds_rxn(t, iz int) float64 {
	temperature := b.temperature(t, iz)
	nu := b.registry.reaction_stoichiometry

	pressure_exponent := 0.0
	for _, j := range b.registry.reacting_gas_list {
		pressure_exponent += nu[j]
	}

	out := 0.0
	if math.Abs(pressure_exponent) >= get_pressure_exponent_threshold() {
		out = -get_gas_constant() * pressure_exponent *
			math.Log(b.pressure(t, iz)/get_pressure_reference())
	}
	for _, j := range b.registry.reacting_component_list {
		out += nu[j] * b.thermo.comp_entropy(temperature, j)
	}
	for _, j := range b.registry.reacting_gas_list {
		out -= get_gas_constant() * nu[j] * b.log_mole_frac_comp.at_comp(t, iz, j)
	}
	return out
}

// enthalpy of reaction at the node, J/mol
func (b *TriplePhaseBoundary) dh_rxn(t, iz int) float64 {
	temperature := b.temperature(t, iz)
	out := 0.0
	for _, j := range b.registry.reacting_component_list {
		out += b.registry.reaction_stoichiometry[j] * b.thermo.comp_enthalpy(temperature, j)
	}
	return out
}

// Gibbs free energy of reaction at the node, J/mol
func (b *TriplePhaseBoundary) dg_rxn(t, iz int) float64 {
	return b.dh_rxn(t, iz) - b.temperature(t, iz)*b.ds_rxn(t, iz)
}

// equilibrium electrode potential, V. The sign of the electron coefficient
// in the denominator follows the below/above electrolyte convention.
func (b *TriplePhaseBoundary) potential_nernst(t, iz int) float64 {
	nu_e := b.registry.reaction_stoichiometry[electron_species]
	if b.config.BelowElectrolyte {
		return -b.dg_rxn(t, iz) / (get_faraday_constant() * nu_e)
	}
	return -b.dg_rxn(t, iz) / (get_faraday_constant() * -nu_e)
}

// log of the exchange current density, evaluated at the fixed operating
// temperature rather than the local boundary temperature
func (b *TriplePhaseBoundary) log_exchange_current_density(t, iz int) float64 {
	temperature := b.operating_temperature.value
	log_k := b.exchange_current_log_preexponential_factor.value
	e_a := b.exchange_current_activation_energy.value
	out := log_k - e_a/(get_gas_constant()*temperature)
	for _, j := range b.registry.reacting_gas_list {
		out += b.exchange_current_exponent_comp[j].value * b.log_mole_frac_comp.at_comp(t, iz, j)
	}
	return out
}

// Assuming there are no current leaks, the reaction rate follows directly
// from the current density, mol/(s m2). The sign flip matches the one in
// potential_nernst.
func (b *TriplePhaseBoundary) reaction_rate_per_unit_area(t, iz int) float64 {
	nu_e := b.registry.reaction_stoichiometry[electron_species]
	if b.config.BelowElectrolyte {
		return b.current_density.at(t, iz) / (get_faraday_constant() * nu_e)
	}
	return b.current_density.at(t, iz) / (get_faraday_constant() * -nu_e)
}

// total voltage drop across the boundary, V
func (b *TriplePhaseBoundary) voltage_drop_total(t, iz int) float64 {
	if b.voltage_drop_custom != nil {
		return b.activation_potential.at(t, iz) + b.voltage_drop_custom.at(t, iz)
	}
	return b.activation_potential.at(t, iz)
}

// _exp_guarded caps the exponent argument so large overpotentials cannot
// overflow to +Inf inside the Butler-Volmer terms.
func _exp_guarded(x float64) float64 {
	if x > 700.0 {
		x = 700.0
	}
	return math.Exp(x)
}

// Fixes variables for the bootstrap solve and releases only the ones it
// actually fixed, so variables already fixed by the caller stay fixed.
type _temporary_fixer struct {
	fixed []*Var
}

func (f *_temporary_fixer) fix(v *Var) {
	if !v.fixed {
		v.fix()
		f.fixed = append(f.fixed, v)
	}
}

func (f *_temporary_fixer) release() {
	for _, v := range f.fixed {
		v.unfix()
	}
}

/*
Two-stage initialization of the boundary model.

Stage one fixes the local temperature deviation, both bulk concentration
references, both concentration deviations and one of the two boundary
heat fluxes (heat_flux_x0 when fix_x0 is true, heat_flux_x1 otherwise),
then evaluates a deterministic starting point for the mole fractions and
log mole fractions directly from the fixed concentrations. Stage two runs
the external solver on the full system. Afterwards every variable fixed
here is released, restoring the caller's degrees of freedom.

Solver failure is returned to the caller unchanged; variables keep their
last-attempted values and no alternative starting point is tried.
*/
func (b *TriplePhaseBoundary) initialize_build(sctx *SolveContext, fix_x0 bool) error {
	fixer := &_temporary_fixer{}
	fixer.fix(b.temperature_deviation_x)
	fixer.fix(b.conc_mol_comp_ref_fuel.Var)
	fixer.fix(b.conc_mol_comp_ref_acid.Var)
	fixer.fix(b.conc_mol_comp_deviation_x_fuel.Var)
	fixer.fix(b.conc_mol_comp_deviation_x_acid.Var)
	if fix_x0 {
		fixer.fix(b.heat_flux_x0.Var)
	} else {
		fixer.fix(b.heat_flux_x1.Var)
	}

	for t := range b.tset {
		for _, iz := range b.iznodes {
			denom := b.conc_mol_total(t, iz)
			for _, j := range b.registry.component_list {
				y := b.conc_mol_comp(t, iz, j) / denom
				b.mole_frac_comp.set_comp(t, iz, j, y)
				if b.registry.is_reacting_gas(j) {
					b.log_mole_frac_comp.set_comp(t, iz, j, math.Log(y))
				}
			}
		}
	}

	sctx.log.Info("initialization solve started")
	err := sctx.solver.Solve(sctx, b.system)
	if err != nil {
		sctx.log.WithError(err).Error("initialization solve failed")
	} else {
		sctx.log.Info("initialization solve completed")
	}

	fixer.release()
	return err
}

/*
Assigns heuristic scale factors to the variables and equations of the
model. Factors already assigned, for example by the enclosing cell model
on a shared variable, are never overwritten. The heat flux continuity
equation takes the smaller of the two adjoining heat flux scales to avoid
ill-conditioning between the two sides.
*/
func (b *TriplePhaseBoundary) recursive_scaling() {
	ssf := func(v *Var, s float64) {
		set_scaling_factor(v, s, false)
	}
	sgsf := set_and_get_scaling_factor
	cst := func(e *Equation, s float64) {
		constraint_scaling_transform(e, s, false)
	}

	// mole fraction scaling default
	sy_def := 10.0

	for t := range b.tset {
		for _, iz := range b.iznodes {
			ssf(b.activation_potential, 10.0)
			si := get_scaling_factor(b.current_density.Var, 1e-2)
			cst(b.activation_potential_eqn[t][iz], si)

			sqx0 := sgsf(b.heat_flux_x0.Var, 1e-2)
			sqx1 := sgsf(b.heat_flux_x1.Var, 1e-2)
			sqx := math.Min(sqx0, sqx1)
			cst(b.heat_flux_x_eqn[t][iz], sqx)

			for c, j := range b.registry.component_list {
				sy := sgsf(b.mole_frac_comp, sy_def)
				cst(b.mole_frac_comp_eqn[t][iz][c], sy)
				var smaterial_flux float64
				if b.registry.is_fuel_species(j) {
					smaterial_flux = sgsf(b.material_flux_x_fuel.Var, 1e-2)
				} else {
					smaterial_flux = sgsf(b.material_flux_x_acid.Var, 1e-2)
				}
				cst(b.material_flux_x_eqn[t][iz][c], smaterial_flux)
			}
			for c := range b.registry.reacting_gas_list {
				sy := sgsf(b.mole_frac_comp, sy_def)
				ssf(b.log_mole_frac_comp, 1.0)
				cst(b.log_mole_frac_comp_eqn[t][iz][c], sy)
			}
		}
	}
}

// fix_operating_temperature sets the fixed operating temperature used by
// the kinetic correlations, K.
func (b *TriplePhaseBoundary) fix_operating_temperature(val float64) {
	b.operating_temperature.fix_at(val)
}

// fix_activation_potential_alphas sets the Butler-Volmer asymmetry factors.
func (b *TriplePhaseBoundary) fix_activation_potential_alphas(alpha1, alpha2 float64) {
	b.activation_potential_alpha1.fix_at(alpha1)
	b.activation_potential_alpha2.fix_at(alpha2)
}

func (b *TriplePhaseBoundary) fix_exchange_current_log_preexponential_factor(val float64) {
	b.exchange_current_log_preexponential_factor.fix_at(val)
}

func (b *TriplePhaseBoundary) fix_exchange_current_activation_energy(val float64) {
	b.exchange_current_activation_energy.fix_at(val)
}

// fix_exchange_current_exponent sets the reaction order exponent of a
// reacting gas species in the exchange current density correlation.
func (b *TriplePhaseBoundary) fix_exchange_current_exponent(j string, val float64) error {
	v, ok := b.exchange_current_exponent_comp[j]
	if !ok {
		return fmt.Errorf("%s: %s is not a reacting gas species", b.name, j)
	}
	v.fix_at(val)
	return nil
}
