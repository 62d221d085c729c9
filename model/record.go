// model/record.go
package model

// Record is one row of a tabular upload. Values are string, float64,
// time.Time or nil.
type Record map[string]interface{}

// RecordSet is an ordered sequence of rows with the header order preserved
type RecordSet struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// Len returns the number of rows
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}
