package worklog

// Entry is one work-hours record, identified by (Name, Date).
//
// Hours and BreakTime are derived at write time and stored as-is; readers
// never recompute them.
type Entry struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Comment   string  `json:"comment"`
	Hours     float64 `json:"hours"`
	BreakTime float64 `json:"break_time"`
}
