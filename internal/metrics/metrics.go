// Package metrics exposes build statistics as Prometheus gauges.
//
// A build is a one-shot process, so nothing is scraped. When a textfile path
// is configured the gauges are written in the node_exporter textfile format
// after each successful build.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JonMunkholm/charitydb/internal/core"
	"github.com/JonMunkholm/charitydb/internal/logging"
)

const namespace = "charitydb"

// Recorder holds the build gauges in a private registry.
type Recorder struct {
	registry     *prometheus.Registry
	textfilePath string
	now          func() time.Time

	rowsLoaded       prometheus.Gauge
	rowsPrepared     prometheus.Gauge
	duplicateEINs    prometheus.Gauge
	missingEIN       prometheus.Gauge
	rowsInserted     prometheus.Gauge
	conflictsIgnored prometheus.Gauge
	rowsMirrored     prometheus.Gauge
	distinctStates   prometheus.Gauge
	distinctMajors   prometheus.Gauge
	duration         prometheus.Gauge
	lastSuccess      prometheus.Gauge
}

// NewRecorder creates a recorder. An empty textfilePath keeps the gauges in
// memory only.
func NewRecorder(textfilePath string) *Recorder {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	r := &Recorder{
		registry:     prometheus.NewRegistry(),
		textfilePath: textfilePath,
		now:          time.Now,

		rowsLoaded:       gauge("rows_loaded", "Data rows read from the source CSV."),
		rowsPrepared:     gauge("rows_prepared", "Rows left after dropping missing EINs and duplicates."),
		duplicateEINs:    gauge("duplicate_eins", "Rows collapsed because their EIN was already seen."),
		missingEIN:       gauge("missing_ein_rows", "Rows dropped for an empty EIN."),
		rowsInserted:     gauge("rows_inserted", "Rows written to the SQLite database."),
		conflictsIgnored: gauge("insert_conflicts_ignored", "Rows skipped by the insert conflict policy."),
		rowsMirrored:     gauge("rows_mirrored", "Rows copied to the PostgreSQL mirror."),
		distinctStates:   gauge("distinct_states", "Distinct non-null states in the database."),
		distinctMajors:   gauge("distinct_ntee_majors", "Distinct non-null NTEE major groups in the database."),
		duration:         gauge("build_duration_seconds", "Wall time of the last build."),
		lastSuccess:      gauge("last_success_timestamp_seconds", "Unix time of the last successful build."),
	}

	r.registry.MustRegister(
		r.rowsLoaded,
		r.rowsPrepared,
		r.duplicateEINs,
		r.missingEIN,
		r.rowsInserted,
		r.conflictsIgnored,
		r.rowsMirrored,
		r.distinctStates,
		r.distinctMajors,
		r.duration,
		r.lastSuccess,
	)
	return r
}

// Registry returns the registry holding the build gauges.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveBuild sets the gauges from report and writes the textfile if one is
// configured.
func (r *Recorder) ObserveBuild(ctx context.Context, report *core.Report) error {
	r.rowsLoaded.Set(float64(report.Prepare.SourceRows))
	r.rowsPrepared.Set(float64(report.Prepare.Prepared))
	r.duplicateEINs.Set(float64(report.Prepare.DuplicatesCollapsed))
	r.missingEIN.Set(float64(report.Prepare.MissingEIN))
	r.rowsInserted.Set(float64(report.Insert.Inserted))
	r.conflictsIgnored.Set(float64(report.Insert.Ignored()))
	r.rowsMirrored.Set(float64(report.Mirrored))
	r.distinctStates.Set(float64(report.Summary.DistinctStates))
	r.distinctMajors.Set(float64(report.Summary.DistinctNteeMajors))
	r.duration.Set(report.Duration.Seconds())
	r.lastSuccess.Set(float64(r.now().Unix()))

	if r.textfilePath == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfilePath, r.registry); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	logging.FromContext(ctx).Debug("metrics written", "path", r.textfilePath)
	return nil
}
