package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Cell configuration read from the input JSON file.
type CellConfig struct {
	Name                                   string             `json:"name"`
	TimeSet                                []float64          `json:"time_set"`
	ControlVolumeZfaces                    []float64          `json:"control_volume_zfaces"`
	ComponentList                          []string           `json:"component_list"`
	ComponentListFuel                      []string           `json:"component_list_fuel"`
	ComponentListAcid                      []string           `json:"component_list_acid"`
	ReactionStoichiometry                  map[string]float64 `json:"reaction_stoichiometry"`
	InertSpecies                           []string           `json:"inert_species"`
	BelowElectrolyte                       bool               `json:"below_electrolyte"`
	VoltageDropCustom                      bool               `json:"voltage_drop_custom"`
	OperatingTemperature                   float64            `json:"operating_temperature"`
	TemperatureZ                           float64            `json:"temperature_z"`
	CurrentDensity                         float64            `json:"current_density"`
	ConcMolRefFuel                         map[string]float64 `json:"conc_mol_ref_fuel"`
	ConcMolRefAcid                         map[string]float64 `json:"conc_mol_ref_acid"`
	ActivationPotentialAlpha1              float64            `json:"activation_potential_alpha1"`
	ActivationPotentialAlpha2              float64            `json:"activation_potential_alpha2"`
	ExchangeCurrentLogPreexponentialFactor float64            `json:"exchange_current_log_preexponential_factor"`
	ExchangeCurrentActivationEnergy        float64            `json:"exchange_current_activation_energy"`
	ExchangeCurrentExponentComp            map[string]float64 `json:"exchange_current_exponent_comp"`
	ThermoCoefficientsPath                 string             `json:"thermo_coefficients_path"`
	FixX0                                  bool               `json:"fix_x0"`
}

/*
Runs one boundary calculation.

	Args:
	    cell_data_path: path to the cell configuration JSON file
	    output_data_dir: output directory for the result CSV files
	    log_level: logging level for the solve context
*/
func run(cell_data_path string, output_data_dir string, log_level logrus.Level) error {
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		if err := os.Mkdir(output_data_dir, 0755); err != nil {
			return err
		}
	}

	bytes, err := os.ReadFile(cell_data_path)
	if err != nil {
		return err
	}
	var cfg CellConfig
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return err
	}

	thermo := default_thermo_db()
	if cfg.ThermoCoefficientsPath != "" {
		// coefficient files are resolved relative to the cell config file
		coeff_path := cfg.ThermoCoefficientsPath
		if !filepath.IsAbs(coeff_path) {
			coeff_path = filepath.Join(filepath.Dir(cell_data_path), coeff_path)
		}
		if err := thermo.load_csv(coeff_path); err != nil {
			return err
		}
	}

	b, err := NewTriplePhaseBoundary(TriplePhaseBoundaryConfig{
		Name:                  cfg.Name,
		TimeSet:               cfg.TimeSet,
		ControlVolumeZfaces:   cfg.ControlVolumeZfaces,
		ComponentList:         cfg.ComponentList,
		ComponentListFuel:     cfg.ComponentListFuel,
		ComponentListAcid:     cfg.ComponentListAcid,
		ReactionStoichiometry: cfg.ReactionStoichiometry,
		InertSpecies:          cfg.InertSpecies,
		BelowElectrolyte:      cfg.BelowElectrolyte,
		VoltageDropCustom:     cfg.VoltageDropCustom,
		Thermo:                thermo,
	})
	if err != nil {
		return err
	}

	// operating conditions and kinetic parameters
	b.fix_operating_temperature(cfg.OperatingTemperature)
	b.temperature_z.fix_at(cfg.TemperatureZ)
	b.current_density.fix_at(cfg.CurrentDensity)
	for j, conc := range cfg.ConcMolRefFuel {
		b.conc_mol_comp_ref_fuel.set_all_comp(j, conc)
	}
	for j, conc := range cfg.ConcMolRefAcid {
		b.conc_mol_comp_ref_acid.set_all_comp(j, conc)
	}
	b.fix_activation_potential_alphas(cfg.ActivationPotentialAlpha1, cfg.ActivationPotentialAlpha2)
	b.fix_exchange_current_log_preexponential_factor(cfg.ExchangeCurrentLogPreexponentialFactor)
	b.fix_exchange_current_activation_energy(cfg.ExchangeCurrentActivationEnergy)
	for j, expo := range cfg.ExchangeCurrentExponentComp {
		if err := b.fix_exchange_current_exponent(j, expo); err != nil {
			return err
		}
	}

	b.recursive_scaling()

	sctx := NewSolveContext(b.name, log_level)

	sctx.log.Info("initialization started")
	if err := b.initialize_build(sctx, cfg.FixX0); err != nil {
		return err
	}

	// For a standalone model the heat flux chosen by fix_x0 is a boundary
	// input of the final simultaneous solve as well.
	if cfg.FixX0 {
		b.heat_flux_x0.fix()
	} else {
		b.heat_flux_x1.fix()
	}
	sctx.log.Info("main solve started")
	if err := sctx.solver.Solve(sctx, b.system); err != nil {
		return err
	}

	rec := NewRecorder()
	rec.record(b)
	if err := rec.save(output_data_dir); err != nil {
		return err
	}
	sctx.log.Infof("results saved to `%s`", output_data_dir)

	return nil
}

func main() {
	var cell_data string
	flag.StringVar(&cell_data, "input", "example/cell_example1.json", "cell configuration JSON file")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "output directory")

	var log_level string
	flag.StringVar(&log_level, "log", "ERROR", "log level (Default=ERROR)")

	flag.Parse()

	fmt.Printf("cell_data: %s\n", cell_data)
	fmt.Printf("output_data_dir: %s\n", output_data_dir)

	level, err := logrus.ParseLevel(log_level)
	if err != nil {
		level = logrus.ErrorLevel
	}

	start := time.Now()

	if err := run(cell_data, output_data_dir, level); err != nil {
		logrus.Fatal(err)
	}

	elapsed_time := time.Since(start)
	logrus.Infof("elapsed_time: %v", elapsed_time)
}
