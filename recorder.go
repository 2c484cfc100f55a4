package main

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// One output row per (time, node) with the solved boundary quantities.
type NodeRecord struct {
	Time                float64 `csv:"time"`
	Node                int     `csv:"node"`
	ZCenter             float64 `csv:"z_center"`
	Temperature         float64 `csv:"temperature_k"`
	Pressure            float64 `csv:"pressure_pa"`
	PotentialNernst     float64 `csv:"potential_nernst_v"`
	ActivationPotential float64 `csv:"activation_potential_v"`
	VoltageDropTotal    float64 `csv:"voltage_drop_total_v"`
	CurrentDensity      float64 `csv:"current_density_a_m2"`
	ReactionRate        float64 `csv:"reaction_rate_mol_s_m2"`
	HeatFluxX0          float64 `csv:"heat_flux_x0_w_m2"`
	HeatFluxX1          float64 `csv:"heat_flux_x1_w_m2"`
	DsRxn               float64 `csv:"ds_rxn_j_mol_k"`
	DhRxn               float64 `csv:"dh_rxn_j_mol"`
	DgRxn               float64 `csv:"dg_rxn_j_mol"`
}

// One output row per (time, node, species).
type CompRecord struct {
	Time         float64 `csv:"time"`
	Node         int     `csv:"node"`
	Species      string  `csv:"species"`
	Channel      string  `csv:"channel"`
	Inert        bool    `csv:"inert"`
	MoleFrac     float64 `csv:"mole_frac"`
	ConcMol      float64 `csv:"conc_mol_m3"`
	MaterialFlux float64 `csv:"material_flux_mol_s_m2"`
}

/*
Collects solved per-node and per-species profiles of a boundary model for
CSV output.
*/
type Recorder struct {
	node_records []*NodeRecord
	comp_records []*CompRecord
}

func NewRecorder() *Recorder {
	return &Recorder{
		node_records: make([]*NodeRecord, 0),
		comp_records: make([]*CompRecord, 0),
	}
}

func (r *Recorder) record(b *TriplePhaseBoundary) {
	for t, time_point := range b.tset {
		for _, iz := range b.iznodes {
			r.node_records = append(r.node_records, &NodeRecord{
				Time:                time_point,
				Node:                iz,
				ZCenter:             (b.zfaces[iz] + b.zfaces[iz+1]) / 2.0,
				Temperature:         b.temperature(t, iz),
				Pressure:            b.pressure(t, iz),
				PotentialNernst:     b.potential_nernst(t, iz),
				ActivationPotential: b.activation_potential.at(t, iz),
				VoltageDropTotal:    b.voltage_drop_total(t, iz),
				CurrentDensity:      b.current_density.at(t, iz),
				ReactionRate:        b.reaction_rate_per_unit_area(t, iz),
				HeatFluxX0:          b.heat_flux_x0.at(t, iz),
				HeatFluxX1:          b.heat_flux_x1.at(t, iz),
				DsRxn:               b.ds_rxn(t, iz),
				DhRxn:               b.dh_rxn(t, iz),
				DgRxn:               b.dg_rxn(t, iz),
			})

			for _, j := range b.registry.component_list {
				channel := "acid"
				flux := 0.0
				if b.registry.is_fuel_species(j) {
					channel = "fuel"
					flux = b.material_flux_x_fuel.at_comp(t, iz, j)
				} else {
					flux = b.material_flux_x_acid.at_comp(t, iz, j)
				}
				r.comp_records = append(r.comp_records, &CompRecord{
					Time:         time_point,
					Node:         iz,
					Species:      j,
					Channel:      channel,
					Inert:        b.registry.is_inert(j),
					MoleFrac:     b.mole_frac_comp.at_comp(t, iz, j),
					ConcMol:      b.conc_mol_comp(t, iz, j),
					MaterialFlux: flux,
				})
			}
		}
	}
}

// save writes the collected profiles to result_nodes.csv and
// result_species.csv in the output directory.
func (r *Recorder) save(output_data_dir string) error {
	node_path := filepath.Join(output_data_dir, "result_nodes.csv")
	node_file, err := os.Create(node_path)
	if err != nil {
		return err
	}
	defer node_file.Close()
	if err := gocsv.MarshalFile(&r.node_records, node_file); err != nil {
		return err
	}

	comp_path := filepath.Join(output_data_dir, "result_species.csv")
	comp_file, err := os.Create(comp_path)
	if err != nil {
		return err
	}
	defer comp_file.Close()
	return gocsv.MarshalFile(&r.comp_records, comp_file)
}
