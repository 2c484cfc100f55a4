package main

import (
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
)

/*
NIST-style Shomate coefficients for one pure component, with t = T/1000 K.

	A..E: polynomial coefficients
	F: integration constant referenced so that comp_enthalpy returns the
	   enthalpy including the standard enthalpy of formation, kJ/mol
	G: entropy integration constant, J/(mol K)
	H: standard enthalpy of formation at 298.15 K, kJ/mol

Non-gas pseudo-species (electron, aqueous proton) carry all-zero rows,
which evaluates to zero entropy and enthalpy by the usual convention.
*/
type ShomateParams struct {
	Species string  `csv:"species"`
	A       float64 `csv:"A"`
	B       float64 `csv:"B"`
	C       float64 `csv:"C"`
	D       float64 `csv:"D"`
	E       float64 `csv:"E"`
	F       float64 `csv:"F"`
	G       float64 `csv:"G"`
	H       float64 `csv:"H"`
}

/*
Pure-component entropy/enthalpy correlation table.

The built-in table covers the species of the formic acid electrolyzer
cell. load_csv merges rows from a coefficient CSV file on top of it, so a
flowsheet can supply its own correlations without recompiling.
*/
type ThermoDB struct {
	params map[string]ShomateParams
}

func default_thermo_db() *ThermoDB {
	rows := []ShomateParams{
		{Species: "H2", A: 33.066178, B: -11.363417, C: 11.432816, D: -2.772874, E: -0.158558, F: -9.980797, G: 172.707974, H: 0.0},
		{Species: "H2O", A: 30.09200, B: 6.832514, C: 6.793435, D: -2.534480, E: 0.082139, F: -250.8810, G: 223.3967, H: -241.8264},
		{Species: "O2", A: 31.32234, B: -20.23531, C: 57.86644, D: -36.50624, E: -0.007374, F: -8.903471, G: 246.7945, H: 0.0},
		{Species: "N2", A: 28.98641, B: 1.853978, C: -9.647459, D: 16.63537, E: 0.000117, F: -8.671914, G: 226.4168, H: 0.0},
		{Species: "CO2", A: 24.99735, B: 55.18696, C: -33.69137, D: 7.948387, E: -0.136638, F: -403.6075, G: 228.2431, H: -393.5224},
		{Species: "Ar", A: 20.78600, B: 2.825911e-07, C: -1.464191e-07, D: 1.092131e-08, E: -3.661371e-08, F: -6.197350, G: 179.9990, H: 0.0},
		{Species: "CH2O2", A: 34.00, B: 60.00, C: -30.00, D: 6.00, E: -0.10, F: -390.00, G: 275.00, H: -378.60},
		{Species: "H^+", A: 0, B: 0, C: 0, D: 0, E: 0, F: 0, G: 0, H: 0},
		{Species: "e^-", A: 0, B: 0, C: 0, D: 0, E: 0, F: 0, G: 0, H: 0},
	}
	params := make(map[string]ShomateParams, len(rows))
	for _, p := range rows {
		params[p.Species] = p
	}
	return &ThermoDB{params: params}
}

// load_csv merges coefficient rows from a CSV file, overriding any
// built-in rows for the same species.
func (db *ThermoDB) load_csv(file_path string) error {
	file, err := os.Open(file_path)
	if err != nil {
		return err
	}
	defer file.Close()

	var rows []*ShomateParams
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return err
	}
	for _, p := range rows {
		db.params[p.Species] = *p
	}
	return nil
}

func (db *ThermoDB) has_species(j string) bool {
	_, ok := db.params[j]
	return ok
}

/*
Molar enthalpy of a pure component, including the standard enthalpy of
formation.

	Args:
	    temperature: K
	    j: species tag

	Returns:
	    molar enthalpy, J/mol
*/
func (db *ThermoDB) comp_enthalpy(temperature float64, j string) float64 {
	p, ok := db.params[j]
	if !ok {
		panic(fmt.Sprintf("no thermodynamic coefficients for species %s", j))
	}
	t := temperature / 1000.0
	h := p.A*t + p.B*t*t/2.0 + p.C*t*t*t/3.0 + p.D*t*t*t*t/4.0 - p.E/t + p.F
	// kJ/mol -> J/mol
	return h * 1000.0
}

/*
Molar entropy of a pure component at the reference pressure.

	Args:
	    temperature: K
	    j: species tag

	Returns:
	    molar entropy, J/(mol K)
*/
func (db *ThermoDB) comp_entropy(temperature float64, j string) float64 {
	p, ok := db.params[j]
	if !ok {
		panic(fmt.Sprintf("no thermodynamic coefficients for species %s", j))
	}
	t := temperature / 1000.0
	// all-zero pseudo-species rows: A*ln(t) and E/(2t^2) both vanish
	s := p.B*t + p.C*t*t/2.0 + p.D*t*t*t/3.0 + p.G
	if p.A != 0.0 {
		s += p.A * math.Log(t)
	}
	if p.E != 0.0 {
		s -= p.E / (2.0 * t * t)
	}
	return s
}
