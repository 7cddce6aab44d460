package overlay

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/mapsmith/overlay-cli/internal/model"
)

// CRSCheck controls whether Run compares the two input CRS tags.
type CRSCheck string

const (
	CRSCheckStrict CRSCheck = "strict"
	CRSCheckOff    CRSCheck = "off"
)

// ParseCRSCheck validates a crs_check mode.
func ParseCRSCheck(s string) (CRSCheck, error) {
	switch CRSCheck(s) {
	case CRSCheckStrict, CRSCheckOff:
		return CRSCheck(s), nil
	case "":
		return CRSCheckStrict, nil
	default:
		return "", eris.Errorf("overlay: unknown crs_check mode %q", s)
	}
}

// Warning is a non-fatal result annotation.
type Warning string

// WarningEmptyOverlay marks a run whose overlay produced zero records.
// Downstream steps ran on an empty collection without erroring.
const WarningEmptyOverlay Warning = "empty_overlay"

// Config holds the pipeline options.
type Config struct {
	GroupBy    string
	Reduction  Reduction
	CRSCheck   CRSCheck
	MetricName string
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Merged has exactly one record per feature of the left input, in
	// input order, with aggregate attributes and rank joined on.
	Merged *model.FeatureCollection
	// Groups holds the dissolved groups in descending metric order.
	Groups *model.FeatureCollection
	// OverlayCount is the number of non-empty intersection records.
	OverlayCount int
	Warnings     []Warning
	Elapsed      time.Duration
}

// HasWarning reports whether the result carries the given annotation.
func (r *Result) HasWarning(w Warning) bool {
	for _, got := range r.Warnings {
		if got == w {
			return true
		}
	}
	return false
}

// Run executes the full pipeline: CRS check, overlay, aggregate,
// derive metric, sort, merge. Each run is a pure function of its
// inputs and configuration; the inputs are not mutated.
func Run(cfg Config, left, right *model.FeatureCollection) (*Result, error) {
	start := time.Now()

	if cfg.GroupBy == "" {
		return nil, eris.New("overlay: group_by is required")
	}
	red, err := ParseReduction(string(cfg.Reduction))
	if err != nil {
		return nil, err
	}
	check, err := ParseCRSCheck(string(cfg.CRSCheck))
	if err != nil {
		return nil, err
	}
	metricName := cfg.MetricName
	if metricName == "" {
		metricName = DefaultMetricName
	}

	if check == CRSCheckStrict && left.CRS != right.CRS {
		return nil, &model.CRSMismatchError{Left: left.CRS, Right: right.CRS}
	}

	log := zap.L().With(
		zap.String("group_by", cfg.GroupBy),
		zap.String("reduction", string(red)),
	)

	pairs, err := Overlay(left, right)
	if err != nil {
		return nil, err
	}

	result := &Result{OverlayCount: pairs.Len()}
	if pairs.Len() == 0 {
		result.Warnings = append(result.Warnings, WarningEmptyOverlay)
		log.Warn("overlay produced no records")
	}

	groups, err := Aggregate(pairs, cfg.GroupBy, red)
	if err != nil {
		return nil, err
	}

	DeriveAreaMetric(groups, metricName)
	result.Groups = SortGroups(groups, metricName)

	merged, err := Merge(left, result.Groups, cfg.GroupBy, metricName)
	if err != nil {
		return nil, err
	}
	result.Merged = merged
	result.Elapsed = time.Since(start)

	log.Info("pipeline complete",
		zap.Int("left", left.Len()),
		zap.Int("right", right.Len()),
		zap.Int("overlay_records", result.OverlayCount),
		zap.Int("groups", result.Groups.Len()),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}
