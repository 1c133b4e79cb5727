package stats

// Counts is the admin report of entity totals and tracked visits.
type Counts struct {
	Stores   int64 `json:"stores"`
	Products int64 `json:"products"`
	Prices   int64 `json:"prices"`
	Visits   int64 `json:"visits"`
}
