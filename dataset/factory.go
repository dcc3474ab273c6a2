package dataset

import (
	"fmt"

	"github.com/smartula/hivesound/logging"
	"github.com/smartula/hivesound/sound"
)

// FeatureType selects which feature dataset the factory builds
type FeatureType string

const (
	FeatureSpectrogram    FeatureType = "spectrogram"
	FeatureMelSpectrogram FeatureType = "melspectrogram"
	FeaturePeriodogram    FeatureType = "periodogram"
	FeatureMFCC           FeatureType = "mfcc"
	FeatureIndices        FeatureType = "indices"
)

// ParseFeatureType resolves a selector name against the enumerated set
func ParseFeatureType(name string) (FeatureType, error) {
	switch ft := FeatureType(name); ft {
	case FeatureSpectrogram, FeatureMelSpectrogram, FeaturePeriodogram, FeatureMFCC, FeatureIndices:
		return ft, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFeatureType, name)
	}
}

// Params is the raw configuration dictionary for one feature type, as
// loaded from an experiment config file. Recognized keys are exactly those
// read by the per-feature config builders below; unrecognized keys are
// ignored and missing keys fall back to the documented defaults.
type Params map[string]any

func (p Params) intOr(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		// JSON numbers decode as float64
		return int(v)
	default:
		return def
	}
}

func (p Params) floatOr(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

func (p Params) boolOr(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

func (p Params) stringOr(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Build constructs the dataset for one feature type via an explicit
// selector-to-constructor mapping. Configuration problems surface here,
// before any training loop starts.
func Build(featureType FeatureType, files []string, labels *sound.LabelSet, params Params) (Dataset, error) {
	logger := logging.WithFields(logging.Fields{
		"component":    "feature_factory",
		"feature_type": featureType,
		"files":        len(files),
	})

	switch featureType {
	case FeatureSpectrogram:
		config := DefaultSpectrogramConfig()
		config.NFFT = params.intOr("nfft", config.NFFT)
		config.HopLength = params.intOr("hop_len", config.HopLength)
		config.FMax = params.intOr("fmax", config.FMax)
		config.Normalize = params.boolOr("scale", config.Normalize)

		logger.Info("building spectrogram dataset", logging.Fields{
			"nfft": config.NFFT, "hop_len": config.HopLength, "fmax": config.FMax, "min_max_scale": config.Normalize,
		})
		return NewSpectrogramDataset(files, labels, config)

	case FeatureMelSpectrogram:
		config := DefaultMelSpectrogramConfig()
		config.NFFT = params.intOr("nfft", config.NFFT)
		config.HopLength = params.intOr("hop_len", config.HopLength)
		config.Mels = params.intOr("mels", config.Mels)
		config.Normalize = params.boolOr("scale", config.Normalize)

		logger.Info("building melspectrogram dataset", logging.Fields{
			"nfft": config.NFFT, "hop_len": config.HopLength, "mels": config.Mels, "min_max_scale": config.Normalize,
		})
		return NewMelSpectrogramDataset(files, labels, config)

	case FeaturePeriodogram:
		config := DefaultPeriodogramConfig()
		config.SliceStart = params.intOr("slice_frequency_start", config.SliceStart)
		config.SliceStop = params.intOr("slice_frequency_stop", config.SliceStop)
		config.DBScale = params.boolOr("scale_db", config.DBScale)
		config.Normalize = params.boolOr("scale", config.Normalize)

		logger.Info("building periodogram dataset", logging.Fields{
			"slice_freq": [2]int{config.SliceStart, config.SliceStop}, "db_scale": config.DBScale, "min_max_scale": config.Normalize,
		})
		return NewPeriodogramDataset(files, labels, config)

	case FeatureMFCC:
		config := DefaultMFCCConfig()
		config.NFFT = params.intOr("nfft", config.NFFT)
		config.HopLength = params.intOr("hop_len", config.HopLength)
		config.Mels = params.intOr("mels", config.Mels)
		config.Coeffs = params.intOr("coeffs", config.Coeffs)
		config.PreEmphasis = params.floatOr("pre_emphasis", config.PreEmphasis)
		config.Normalize = params.boolOr("scale", config.Normalize)

		logger.Info("building mfcc dataset", logging.Fields{
			"nfft": config.NFFT, "hop_len": config.HopLength, "mels": config.Mels, "coeffs": config.Coeffs, "min_max_scale": config.Normalize,
		})
		return NewMFCCDataset(files, labels, config)

	case FeatureIndices:
		config := DefaultIndicesConfig()
		config.Indicator = Indicator(params.stringOr("type", string(config.Indicator)))
		config.JSamples = params.intOr("j_samples", config.JSamples)

		logger.Info("building sound indices dataset", logging.Fields{
			"type": config.Indicator, "j_samples": config.JSamples,
		})
		return NewSoundIndicesDataset(files, labels, config)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeatureType, featureType)
	}
}

// BuildDataset constructs the configured dataset and, when background
// filenames and labels are supplied, wraps it in a DoubleFeatureDataset
// built with the same parameters. It also returns the flat
// FEATURE_-prefixed parameter map for experiment bookkeeping.
func BuildDataset(
	featureType FeatureType,
	files []string,
	labels *sound.LabelSet,
	params Params,
	backgroundFiles []string,
	backgroundLabels *sound.LabelSet,
) (Dataset, map[string]any, error) {
	ds, err := Build(featureType, files, labels, params)
	if err != nil {
		return nil, nil, err
	}

	if len(backgroundFiles) > 0 && backgroundLabels != nil {
		background, err := Build(featureType, backgroundFiles, backgroundLabels, params)
		if err != nil {
			return nil, nil, fmt.Errorf("background dataset: %w", err)
		}
		ds, err = NewDoubleFeatureDataset(ds, background)
		if err != nil {
			return nil, nil, err
		}
	}

	return ds, BookkeepingParams(ds), nil
}

// BookkeepingParams flattens a dataset's active parameters into
// FEATURE_<key> entries for experiment logging
func BookkeepingParams(ds Dataset) map[string]any {
	flat := make(map[string]any)
	for key, val := range ds.Params() {
		flat["FEATURE_"+key] = val
	}
	return flat
}
