package models

import "time"

// Window is a time interval during which weather conditions are favorable for
// a field operation, as returned by the weather collaborator.
type Window struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	QualityScore  float64   `json:"quality_score"` // 0-100
	Confidence    float64   `json:"confidence"`    // 0-100
}

// BestWindow returns the highest-quality window of the list, or nil when the
// list is empty.
func BestWindow(windows []Window) *Window {
	if len(windows) == 0 {
		return nil
	}
	best := &windows[0]
	for i := 1; i < len(windows); i++ {
		if windows[i].QualityScore > best.QualityScore {
			best = &windows[i]
		}
	}
	return best
}
