package main

import (
	"fmt"
	"math"
	"sort"
)

// electron pseudo-species tag used in reaction stoichiometry maps
const electron_species = "e^-"

/*
Registry of the chemical species present at the triple phase boundary and
of the reaction stoichiometry.

	component_list: gas species from both the fuel and the acid channel.
	    All inert species must be included in this list to get the mole
	    fractions correct. 'e^-' must not be in the list.
	component_list_fuel / component_list_acid: channel membership of each
	    combined-list species. Membership decides which side's bulk
	    concentration and material flux a species binds to.
	reaction_stoichiometry: species -> signed coefficient (positive =
	    produced, negative = consumed). Must contain a nonzero term for the
	    electrons consumed or liberated at the boundary. Owned exclusively
	    by the registry and immutable after construction.
	inert_species: species that do not react at the triple phase boundary.
*/
type SpeciesRegistry struct {
	component_list      []string
	component_list_fuel []string
	component_list_acid []string
	inert_species_list  []string

	reaction_stoichiometry map[string]float64

	// stoichiometry entries minus inerts; contains 'e^-' and any non-gas
	// species crossing the electrolyte, used for thermodynamic sums
	reacting_component_list []string

	// component_list minus inerts, used for kinetic and flux equations
	reacting_gas_list []string

	_fuel  map[string]bool
	_acid  map[string]bool
	_inert map[string]bool
	_gas   map[string]bool
}

/*
Validates the species configuration and derives the reacting subsets.

	Args:
	    name: name of the owning boundary model, used in error messages
	    component_list: combined fuel + acid channel species
	    component_list_fuel: fuel channel species
	    component_list_acid: acid channel species
	    reaction_stoichiometry: species -> signed coefficient
	    inert_species: species with zero net stoichiometric coefficient

	Returns:
	    the registry, or a configuration error naming the offending
	    species. Configuration errors are fatal and never retried.
*/
func NewSpeciesRegistry(
	name string,
	component_list []string,
	component_list_fuel []string,
	component_list_acid []string,
	reaction_stoichiometry map[string]float64,
	inert_species []string,
) (*SpeciesRegistry, error) {
	nu_e, ok := reaction_stoichiometry[electron_species]
	if !ok || nu_e == 0.0 {
		return nil, fmt.Errorf(
			"number of electrons produced or consumed in redox reaction at %s not specified",
			name,
		)
	}

	// own a private copy so later caller mutations cannot leak in
	stoich := make(map[string]float64, len(reaction_stoichiometry))
	for j, coeff := range reaction_stoichiometry {
		stoich[j] = coeff
	}

	comps := make(map[string]bool, len(component_list))
	for _, j := range component_list {
		comps[j] = true
	}

	fuel := make(map[string]bool, len(component_list_fuel))
	for _, j := range component_list_fuel {
		if !comps[j] {
			return nil, fmt.Errorf(
				"%s: fuel channel species %s is not in the combined component list", name, j,
			)
		}
		fuel[j] = true
	}

	acid := make(map[string]bool, len(component_list_acid))
	for _, j := range component_list_acid {
		if !comps[j] {
			return nil, fmt.Errorf(
				"%s: acid channel species %s is not in the combined component list", name, j,
			)
		}
		acid[j] = true
	}

	for _, j := range component_list {
		if !fuel[j] && !acid[j] {
			return nil, fmt.Errorf(
				"%s: component %s belongs to neither the fuel nor the acid channel", name, j,
			)
		}
	}

	inert := make(map[string]bool, len(inert_species))
	for _, j := range inert_species {
		if !comps[j] {
			return nil, fmt.Errorf(
				"%s invalid component in inert_species argument. %s is not in the provided component list",
				name, j,
			)
		}
		// absorb floating-point round-off in supplied coefficients
		if coeff, ok := stoich[j]; ok && math.Abs(coeff) > get_inert_tolerance() {
			return nil, fmt.Errorf(
				"component %s was in inert_species provided to %s, but has a nonzero stoichiometric coefficient",
				j, name,
			)
		}
		stoich[j] = 0.0
		inert[j] = true
	}

	// reacting components in component-list order, then the non-gas
	// species (electron, ions) in sorted order for determinism
	reacting_component_list := make([]string, 0, len(stoich))
	for _, j := range component_list {
		if _, ok := stoich[j]; ok && !inert[j] {
			reacting_component_list = append(reacting_component_list, j)
		}
	}
	extra := make([]string, 0, len(stoich))
	for j := range stoich {
		if !comps[j] {
			extra = append(extra, j)
		}
	}
	sort.Strings(extra)
	reacting_component_list = append(reacting_component_list, extra...)

	gas := make(map[string]bool, len(component_list))
	reacting_gas_list := make([]string, 0, len(component_list))
	for _, j := range component_list {
		if !inert[j] {
			reacting_gas_list = append(reacting_gas_list, j)
			gas[j] = true
		}
	}

	return &SpeciesRegistry{
		component_list:          component_list,
		component_list_fuel:     component_list_fuel,
		component_list_acid:     component_list_acid,
		inert_species_list:      inert_species,
		reaction_stoichiometry:  stoich,
		reacting_component_list: reacting_component_list,
		reacting_gas_list:       reacting_gas_list,
		_fuel:                   fuel,
		_acid:                   acid,
		_inert:                  inert,
		_gas:                    gas,
	}, nil
}

// is_fuel_species reports fuel channel membership. Fuel membership is
// checked before acid membership wherever a species routes to one side.
func (r *SpeciesRegistry) is_fuel_species(j string) bool {
	return r._fuel[j]
}

func (r *SpeciesRegistry) is_acid_species(j string) bool {
	return r._acid[j]
}

func (r *SpeciesRegistry) is_inert(j string) bool {
	return r._inert[j]
}

func (r *SpeciesRegistry) is_reacting_gas(j string) bool {
	return r._gas[j]
}
