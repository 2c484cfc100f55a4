package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Zero-row correlations for synthetic species, so thermodynamic sums
// vanish and kinetic behavior can be checked in isolation.
func _ab_thermo() *ThermoDB {
	return &ThermoDB{params: map[string]ShomateParams{
		"A":   {Species: "A"},
		"B":   {Species: "B"},
		"e^-": {Species: "e^-"},
	}}
}

func _ab_config(stoich map[string]float64, below bool) TriplePhaseBoundaryConfig {
	return TriplePhaseBoundaryConfig{
		Name:                  "ab_boundary",
		ControlVolumeZfaces:   []float64{0.0, 1.0},
		ComponentList:         []string{"A", "B"},
		ComponentListFuel:     []string{"A"},
		ComponentListAcid:     []string{"B"},
		ReactionStoichiometry: stoich,
		BelowElectrolyte:      below,
		Thermo:                _ab_thermo(),
	}
}

// Fuel-side boundary of the formic acid electrolyzer cell, two nodes.
func _example_config(below bool) TriplePhaseBoundaryConfig {
	return TriplePhaseBoundaryConfig{
		Name:                  "fuel_triple_phase_boundary",
		ControlVolumeZfaces:   []float64{0.0, 0.5, 1.0},
		ComponentList:         []string{"CO2", "N2", "O2", "D2O", "Ar", "H2O", "CH2O2"},
		ComponentListFuel:     []string{"CO2", "N2", "O2", "D2O", "Ar"},
		ComponentListAcid:     []string{"H2O", "CH2O2"},
		ReactionStoichiometry: map[string]float64{"CH2O2": -0.5, "CO2": 0.5, "H^+": 1.0, "e^-": 1.0},
		InertSpecies:          []string{"N2", "H2O", "D2O", "Ar", "O2"},
		BelowElectrolyte:      below,
	}
}

func _example_model(t *testing.T) *TriplePhaseBoundary {
	b, err := NewTriplePhaseBoundary(_example_config(true))
	require.NoError(t, err)

	b.fix_operating_temperature(400.0)
	b.temperature_z.fix_at(400.0)
	b.current_density.fix_at(-2000.0)
	b.conc_mol_comp_ref_fuel.set_all_comp("CO2", 10.0)
	b.conc_mol_comp_ref_fuel.set_all_comp("N2", 5.0)
	b.conc_mol_comp_ref_fuel.set_all_comp("O2", 1.0)
	b.conc_mol_comp_ref_fuel.set_all_comp("D2O", 1.0)
	b.conc_mol_comp_ref_fuel.set_all_comp("Ar", 0.5)
	b.conc_mol_comp_ref_acid.set_all_comp("H2O", 10.0)
	b.conc_mol_comp_ref_acid.set_all_comp("CH2O2", 2.5)
	b.fix_activation_potential_alphas(0.94, 0.06)
	b.fix_exchange_current_log_preexponential_factor(22.0)
	b.fix_exchange_current_activation_energy(45.0e3)
	require.NoError(t, b.fix_exchange_current_exponent("CH2O2", 0.5))
	require.NoError(t, b.fix_exchange_current_exponent("CO2", 0.5))
	b.recursive_scaling()
	return b
}

func TestBuildExampleModel(t *testing.T) {
	b := _example_model(t)

	assert.Len(t, b.iznodes, 2)
	assert.Len(t, b.tset, 1)
	assert.Equal(t, []string{"CO2", "CH2O2"}, b.registry.reacting_gas_list)

	// owned-fresh boundary inputs start fixed, solved quantities free
	assert.Equal(t, OwnedFresh, b.current_density.binding)
	assert.True(t, b.current_density.fixed)
	assert.False(t, b.material_flux_x_fuel.fixed)
	assert.False(t, b.heat_flux_x0.fixed)
}

func TestBorrowedVariableBinding(t *testing.T) {
	i_cell := NewVar("current_density", 1, 1, nil, -500.0, math.Inf(-1), math.Inf(1))

	cfg := _ab_config(map[string]float64{"A": -1.0, "B": 1.0, "e^-": 2.0}, true)
	cfg.CurrentDensity = i_cell
	b, err := NewTriplePhaseBoundary(cfg)
	require.NoError(t, err)

	assert.Equal(t, BorrowedShared, b.current_density.binding)
	assert.Same(t, i_cell, b.current_density.Var)
	assert.False(t, b.current_density.fixed)
}

func TestPressureIdentity(t *testing.T) {
	b := _example_model(t)

	// pressure must equal R*T*sum(conc) as an algebraic identity
	for _, iz := range b.iznodes {
		total := 0.0
		for _, j := range b.registry.component_list {
			total += b.conc_mol_comp(0, iz, j)
		}
		assert.InDelta(t, get_gas_constant()*b.temperature(0, iz)*total, b.pressure(0, iz), 1e-9)
	}
}

func TestButlerVolmerZeroAtZeroOverpotential(t *testing.T) {
	b, err := NewTriplePhaseBoundary(_ab_config(
		map[string]float64{"A": -1.0, "B": 1.0, "e^-": 2.0}, true))
	require.NoError(t, err)

	b.conc_mol_comp_ref_fuel.set_all_comp("A", 10.0)
	b.conc_mol_comp_ref_acid.set_all_comp("B", 10.0)
	b.mole_frac_comp.set_all(0.5)
	b.log_mole_frac_comp.set_all(math.Log(0.5))
	b.activation_potential.set(0, 0, 0.0)
	b.current_density.fix_at(0.0)

	// both exponential terms collapse to i0, so i = i0 - i0 = 0 exactly
	assert.Equal(t, 0.0, b.activation_potential_eqn[0][0].resid())
}

func TestPressureCorrectionBelowThreshold(t *testing.T) {
	// net gas-phase coefficient sum of 1e-7 sits below the 1e-6 threshold,
	// so the pressure term must vanish exactly, not be near-zero noise
	b, err := NewTriplePhaseBoundary(_ab_config(
		map[string]float64{"A": -1.0, "B": 1.0000001, "e^-": 2.0}, true))
	require.NoError(t, err)

	l_a := -0.7
	l_b := -0.6
	b.log_mole_frac_comp.set_comp(0, 0, "A", l_a)
	b.log_mole_frac_comp.set_comp(0, 0, "B", l_b)

	expected := 0.0
	expected -= get_gas_constant() * (-1.0) * l_a
	expected -= get_gas_constant() * 1.0000001 * l_b
	require.Equal(t, expected, b.ds_rxn(0, 0))

	// the pressure at default concentrations is far from the reference,
	// so including the term would have shifted the result
	pressure_exponent := -1.0 + 1.0000001
	with_pressure := expected - get_gas_constant()*pressure_exponent*
		math.Log(b.pressure(0, 0)/get_pressure_reference())
	assert.NotEqual(t, expected, with_pressure)
}

func TestBelowElectrolyteSignCoupling(t *testing.T) {
	stoich := map[string]float64{"A": -1.0, "B": 1.0, "e^-": 2.0}

	below, err := NewTriplePhaseBoundary(_ab_config(stoich, true))
	require.NoError(t, err)
	above, err := NewTriplePhaseBoundary(_ab_config(stoich, false))
	require.NoError(t, err)

	for _, b := range []*TriplePhaseBoundary{below, above} {
		b.current_density.fix_at(-100.0)
		b.log_mole_frac_comp.set_comp(0, 0, "A", -0.7)
		b.log_mole_frac_comp.set_comp(0, 0, "B", -0.6)
	}

	// the flag flips the Nernst potential and the reaction rate together
	require.NotEqual(t, 0.0, below.potential_nernst(0, 0))
	assert.Equal(t, below.potential_nernst(0, 0), -above.potential_nernst(0, 0))
	assert.Equal(t, below.reaction_rate_per_unit_area(0, 0), -above.reaction_rate_per_unit_area(0, 0))
}

func TestMaterialFluxRouting(t *testing.T) {
	b, err := NewTriplePhaseBoundary(_ab_config(
		map[string]float64{"A": -1.0, "B": 1.0, "e^-": 2.0}, true))
	require.NoError(t, err)
	b.current_density.fix_at(-100.0)

	rate := b.reaction_rate_per_unit_area(0, 0)
	require.NotEqual(t, 0.0, rate)

	// fuel side carries -rate*nu, acid side +rate*nu
	b.material_flux_x_fuel.set_comp(0, 0, "A", -rate*(-1.0))
	assert.InDelta(t, 0.0, b.material_flux_x_eqn[0][0][0].resid(), 1e-15)

	b.material_flux_x_acid.set_comp(0, 0, "B", rate*1.0)
	assert.InDelta(t, 0.0, b.material_flux_x_eqn[0][0][1].resid(), 1e-15)
}

func TestInertChannelMemberFlux(t *testing.T) {
	cfg := TriplePhaseBoundaryConfig{
		Name:                  "ab_boundary",
		ControlVolumeZfaces:   []float64{0.0, 1.0},
		ComponentList:         []string{"A", "B", "N2"},
		ComponentListFuel:     []string{"A", "N2"},
		ComponentListAcid:     []string{"B"},
		ReactionStoichiometry: map[string]float64{"A": -1.0, "B": 1.0, "e^-": 2.0},
		InertSpecies:          []string{"N2"},
		BelowElectrolyte:      true,
		Thermo:                _ab_thermo(),
	}
	b, err := NewTriplePhaseBoundary(cfg)
	require.NoError(t, err)
	b.current_density.fix_at(-100.0)

	// an inert fuel-channel member is constrained on the fuel flux only,
	// and its zero coefficient forces that flux to zero
	require.NotEqual(t, 0.0, b.reaction_rate_per_unit_area(0, 0))
	assert.Equal(t, 0.0, b.material_flux_x_eqn[0][0][2].resid())

	b.material_flux_x_fuel.set_comp(0, 0, "N2", 5.0)
	assert.Equal(t, 5.0, b.material_flux_x_eqn[0][0][2].resid())

	assert.Panics(t, func() { b.material_flux_x_acid.at_comp(0, 0, "N2") })
}

func TestVoltageDropCustom(t *testing.T) {
	cfg := _ab_config(map[string]float64{"A": -1.0, "B": 1.0, "e^-": 2.0}, true)
	cfg.VoltageDropCustom = true
	b, err := NewTriplePhaseBoundary(cfg)
	require.NoError(t, err)

	b.activation_potential.set(0, 0, -1.0)
	b.voltage_drop_custom.set(0, 0, 0.1)
	assert.InDelta(t, -0.9, b.voltage_drop_total(0, 0), 1e-15)
}

func TestMissingThermoCoefficients(t *testing.T) {
	// D2O reacts but the built-in table has no coefficients for it
	cfg := _example_config(true)
	cfg.ReactionStoichiometry = map[string]float64{"CH2O2": -0.5, "D2O": 0.5, "e^-": 1.0}
	cfg.InertSpecies = []string{"N2", "H2O", "Ar", "O2"}

	_, err := NewTriplePhaseBoundary(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "D2O")
}

func TestConfigurationErrorPropagation(t *testing.T) {
	cfg := _example_config(true)
	cfg.ReactionStoichiometry = map[string]float64{"CH2O2": -0.5, "CO2": 0.5}

	_, err := NewTriplePhaseBoundary(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuel_triple_phase_boundary")
}

func TestRecursiveScalingHeuristics(t *testing.T) {
	b := _example_model(t)

	assert.Equal(t, 10.0, b.activation_potential.scale)
	assert.Equal(t, 1e-2, b.heat_flux_x0.scale)
	assert.Equal(t, 1.0, b.log_mole_frac_comp.scale)
	assert.Equal(t, 1e-2, b.activation_potential_eqn[0][0].scale)
	assert.Equal(t, 1e-2, b.heat_flux_x_eqn[0][0].scale)
	assert.Equal(t, 10.0, b.mole_frac_comp_eqn[0][0][0].scale)
}

func TestRecursiveScalingMinOfBothSides(t *testing.T) {
	b, err := NewTriplePhaseBoundary(_example_config(true))
	require.NoError(t, err)

	// a smaller scale assigned upstream on one side must win on the
	// heat flux continuity equation, and never be overwritten
	set_scaling_factor(b.heat_flux_x1.Var, 1e-3, false)
	b.recursive_scaling()
	assert.Equal(t, 1e-3, b.heat_flux_x_eqn[0][0].scale)
	assert.Equal(t, 1e-2, b.heat_flux_x0.scale)

	b.recursive_scaling()
	assert.Equal(t, 1e-3, b.heat_flux_x_eqn[0][0].scale)
}

func TestInitializeAndSolve(t *testing.T) {
	b := _example_model(t)
	sctx := NewSolveContext(b.name, logrus.ErrorLevel)

	require.NoError(t, b.initialize_build(sctx, false))

	for _, iz := range b.iznodes {
		// mole fractions close within solver tolerance
		sum := 0.0
		for _, j := range b.registry.component_list {
			sum += b.mole_frac_comp.at_comp(0, iz, j)
		}
		assert.InDelta(t, 1.0, sum, 1e-8)

		// species flux split follows channel membership and stoichiometry
		rate := b.reaction_rate_per_unit_area(0, iz)
		assert.InDelta(t, -rate*0.5, b.material_flux_x_fuel.at_comp(0, iz, "CO2"), 1e-6)
		assert.InDelta(t, rate*(-0.5), b.material_flux_x_acid.at_comp(0, iz, "CH2O2"), 1e-6)
		assert.InDelta(t, 0.0, b.material_flux_x_fuel.at_comp(0, iz, "N2"), 1e-6)

		// energy balance holds with both heating terms
		balance := b.heat_flux_x1.at(0, iz) -
			b.heat_flux_x0.at(0, iz) -
			b.current_density.at(0, iz)*b.voltage_drop_total(0, iz) +
			rate*b.temperature(0, iz)*b.ds_rxn(0, iz)
		assert.InDelta(t, 0.0, balance, 1e-6)

		// electrolysis operation drives a negative overpotential
		assert.Less(t, b.activation_potential.at(0, iz), 0.0)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	b := _example_model(t)
	sctx := NewSolveContext(b.name, logrus.ErrorLevel)

	require.NoError(t, b.initialize_build(sctx, false))
	first := b.system.flatten()

	// a second fix/solve/unfix cycle on the converged state is a no-op
	require.NoError(t, b.initialize_build(sctx, false))
	second := b.system.flatten()

	require.Len(t, second, len(first))
	assert.InDeltaSlice(t, first, second, 1e-6)
}

func TestInitializeRestoresFixedState(t *testing.T) {
	b := _example_model(t)
	sctx := NewSolveContext(b.name, logrus.ErrorLevel)

	require.True(t, b.conc_mol_comp_ref_fuel.fixed)
	require.False(t, b.heat_flux_x1.fixed)

	require.NoError(t, b.initialize_build(sctx, false))

	// variables fixed before the cycle stay fixed, the heat flux fixed in
	// stage one is released again
	assert.True(t, b.conc_mol_comp_ref_fuel.fixed)
	assert.True(t, b.temperature_deviation_x.fixed)
	assert.False(t, b.heat_flux_x1.fixed)
	assert.False(t, b.heat_flux_x0.fixed)
}

func TestRecorderSave(t *testing.T) {
	b := _example_model(t)
	sctx := NewSolveContext(b.name, logrus.ErrorLevel)
	require.NoError(t, b.initialize_build(sctx, false))

	rec := NewRecorder()
	rec.record(b)
	require.Len(t, rec.node_records, 2)
	require.Len(t, rec.comp_records, 14)

	dir := t.TempDir()
	require.NoError(t, rec.save(dir))
	for _, name := range []string{"result_nodes.csv", "result_species.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
