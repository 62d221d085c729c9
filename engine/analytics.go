// engine/analytics.go
package engine

import (
	"time"

	"github.com/soxlite/api/model"
)

// Axis is one dimension of a heatmap
type Axis struct {
	Role model.FieldRole
	// Label overrides the resolved column name
	Label string
	// Derive maps the cell text to the bucket key
	Derive func(string) string
}

func axis(role model.FieldRole) Axis {
	return Axis{Role: role}
}

func derivedAxis(role model.FieldRole, label string, derive func(string) string) Axis {
	return Axis{Role: role, Label: label, Derive: derive}
}

func (a Axis) key(ds *Dataset, i int) string {
	v := ds.Text(i, a.Role)
	if a.Derive != nil && v != "" {
		v = a.Derive(v)
	}
	return v
}

func (a Axis) label(ds *Dataset) string {
	if a.Label != "" {
		return a.Label
	}
	return ds.Roles[a.Role]
}

// AnalyticsProfile parameterizes trend, owner and heatmap breakdowns
type AnalyticsProfile struct {
	// DateRole buckets rows by month
	DateRole model.FieldRole
	// Heatmaps lists axis pairs in preference order
	Heatmaps [][2]Axis
}

const monthLayout = "2006-01"

// ComputeTrends buckets overdue and failed rows by the month of the
// framework's date role. Rows with unparsable dates are not bucketed.
func ComputeTrends(ds *Dataset, now time.Time) model.Trends {
	trends := model.Trends{}
	profile, ok := lookupProfile(ds.Framework)
	if !ok || !ds.Has(profile.Analytics.DateRole) {
		return trends
	}
	dateRole := profile.Analytics.DateRole
	mp := profile.Metrics

	trends.OverdueByMonth = map[string]int{}
	withStatus := ds.Has(model.RoleStatus)
	if withStatus {
		trends.FailByMonth = map[string]int{}
	}

	for i := 0; i < ds.Len(); i++ {
		at, ok := ds.Date(i, dateRole)
		if !ok {
			continue
		}
		month := at.Format(monthLayout)
		if mp.overdue(ds, i, now) {
			trends.OverdueByMonth[month]++
		}
		if withStatus && mp.failed(ds, i) {
			trends.FailByMonth[month]++
		}
	}
	return trends
}

// ComputeOwnerPerformance aggregates total, failed and overdue rows per
// non-blank owner. Requires the owner and status roles.
func ComputeOwnerPerformance(ds *Dataset, now time.Time) map[string]model.OwnerStats {
	stats := map[string]model.OwnerStats{}
	profile, ok := lookupProfile(ds.Framework)
	if !ok || !ds.Has(model.RoleOwner, model.RoleStatus) {
		return stats
	}
	mp := profile.Metrics
	withDates := ds.Has(mp.OverdueRole)

	for i := 0; i < ds.Len(); i++ {
		owner := ds.Text(i, model.RoleOwner)
		if owner == "" {
			continue
		}
		s := stats[owner]
		s.Total++
		if mp.failed(ds, i) {
			s.Failed++
		}
		if withDates && mp.overdue(ds, i, now) {
			s.Overdue++
		}
		stats[owner] = s
	}
	return stats
}

// ComputeHeatmap builds the first axis pair that resolves, falls back to a
// distribution over the first resolvable row axis, and finally to an empty
// placeholder grid.
func ComputeHeatmap(ds *Dataset) model.Heatmap {
	profile, ok := lookupProfile(ds.Framework)
	if ok {
		for _, pair := range profile.Analytics.Heatmaps {
			rows, cols := pair[0], pair[1]
			if !ds.Has(rows.Role, cols.Role) {
				continue
			}
			if hm, ok := grid(ds, rows, cols); ok {
				return hm
			}
		}
		for _, pair := range profile.Analytics.Heatmaps {
			if ds.Has(pair[0].Role) {
				if hm, ok := distribution(ds, pair[0]); ok {
					return hm
				}
			}
		}
	}
	return model.Heatmap{
		Rows:    "No Data",
		Columns: "No Categories",
		Cells:   map[string]map[string]int{"No Data": {"No Categories": 0}},
	}
}

func grid(ds *Dataset, rows, cols Axis) (model.Heatmap, bool) {
	hm := model.Heatmap{Rows: rows.label(ds), Columns: cols.label(ds), Cells: map[string]map[string]int{}}
	for i := 0; i < ds.Len(); i++ {
		r, c := rows.key(ds, i), cols.key(ds, i)
		if r == "" || c == "" {
			continue
		}
		if hm.Cells[r] == nil {
			hm.Cells[r] = map[string]int{}
		}
		hm.Cells[r][c]++
	}
	return hm, len(hm.Cells) > 0
}

func distribution(ds *Dataset, rows Axis) (model.Heatmap, bool) {
	label := rows.label(ds) + " Distribution"
	hm := model.Heatmap{Rows: label, Columns: rows.label(ds), Cells: map[string]map[string]int{label: {}}}
	for i := 0; i < ds.Len(); i++ {
		if v := rows.key(ds, i); v != "" {
			hm.Cells[label][v]++
		}
	}
	return hm, len(hm.Cells[label]) > 0
}
