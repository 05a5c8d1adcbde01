package dataset

import (
	"fmt"
	"log"

	"github.com/carbocation/c14misc"
	"github.com/carbocation/c14misc/calibration"
	"github.com/carbocation/c14misc/config"
	"github.com/carbocation/c14misc/sample"
	"github.com/carbocation/pfx"
)

// FromConfig reads the samples and the calibration curve named by the
// configuration, from local paths or gs:// URLs, and builds the dataset.
func FromConfig(cfg config.Config) (*Dataset, error) {
	if cfg.Input == "" {
		return nil, fmt.Errorf("no input spreadsheet was given")
	}
	if cfg.Curve == "" {
		return nil, fmt.Errorf("no calibration curve was given")
	}

	layout, err := sample.LookupLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}

	client, err := c14misc.NewStorageClientIfNeeded(cfg.Input, cfg.Curve)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if client != nil {
		defer client.Close()
	}

	samples, err := sample.Load(cfg.Input, cfg.Sheet, layout, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	log.Printf("Loaded %d samples from %s\n", len(samples), cfg.Input)

	curve, err := calibration.LoadCurve(cfg.Curve, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if cfg.Resolution > 0 {
		if curve, err = curve.Resolve(cfg.Resolution); err != nil {
			return nil, err
		}
	}

	cal, err := calibration.NewCalibrator(curve, cfg.Cutoff)
	if err != nil {
		return nil, err
	}
	log.Printf("Calibrating against %s (%d curve points)\n", curve.Name, len(curve.Points))

	return Build(samples, cal)
}
