package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/formica/config"
)

// DailyRecord is one end-of-day CSV row for one colony.
type DailyRecord struct {
	Day        int    `csv:"day"`
	Colony     string `csv:"colony"`
	Season     string `csv:"season"`
	Food       int    `csv:"food"`
	Births     int    `csv:"births"`
	Deaths     int    `csv:"deaths"`
	Population int    `csv:"population"`
	FoodStock  int    `csv:"food_stock"`

	EnergyMean   float64 `csv:"energy_mean"`
	EnergyStdDev float64 `csv:"energy_stddev"`
	EnergyP10    float64 `csv:"energy_p10"`
	EnergyP50    float64 `csv:"energy_p50"`
	EnergyP90    float64 `csv:"energy_p90"`
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir       string
	dailyFile *os.File

	dailyHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	dailyPath := filepath.Join(dir, "daily.csv")
	f, err := os.Create(dailyPath)
	if err != nil {
		return nil, fmt.Errorf("creating daily.csv: %w", err)
	}
	om.dailyFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML beside the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteDaily appends one record per colony for a finished day.
func (om *OutputManager) WriteDaily(records []DailyRecord) error {
	if om == nil {
		return nil
	}

	if !om.dailyHeaderWritten {
		if err := gocsv.Marshal(records, om.dailyFile); err != nil {
			return fmt.Errorf("writing daily records: %w", err)
		}
		om.dailyHeaderWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, om.dailyFile); err != nil {
		return fmt.Errorf("writing daily records: %w", err)
	}
	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.dailyFile == nil {
		return nil
	}
	err := om.dailyFile.Close()
	om.dailyFile = nil
	return err
}
