package reports

// Report is a stored report definition: a name plus the read-only SQL it runs.
type Report struct {
	ID         int64
	Name       string
	SQL        string
	Parameters []string
}

// Result is an executed report: column names plus row values in column order.
type Result struct {
	Columns  []string
	Rows     [][]any
	RowCount int
}
