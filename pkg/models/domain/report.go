package domain

// Report is the renderer-agnostic shape of one business-question answer,
// used by the terminal reporter.
type Report struct {
	Title    string
	Year     int
	State    string // empty means all states
	Sections []ReportSection
	Insight  string
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
