package main

// gas constant, J/(mol K)
func get_gas_constant() float64 {
	return 8.31446261815324
}

// Faraday constant, C/mol
func get_faraday_constant() float64 {
	return 96485.33212
}

// reference pressure for the entropy pressure correction, Pa
func get_pressure_reference() float64 {
	return 1.0e5
}

// tolerance for the stoichiometric coefficient of an inert species
func get_inert_tolerance() float64 {
	return 1.0e-8
}

// threshold below which the net gas-phase stoichiometric coefficient sum is
// treated as exactly zero in the entropy pressure correction
func get_pressure_exponent_threshold() float64 {
	return 1.0e-6
}
