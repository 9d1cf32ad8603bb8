package tracking

import "math"

// EvaluateAlert is the single source of truth for the danger flag and
// the alert type; both always agree. Priority: rapid ascent, rapid
// descent, relative height, total height. Height thresholds of 0 are
// disabled. altitude may be nil when no source has produced one yet.
func EvaluateAlert(t Thresholds, avgVerticalSpeed, relAltitude float64, altitude *float64) (bool, AlertType) {
	alert := AlertNone
	switch {
	case avgVerticalSpeed > t.AvgSpeed:
		alert = AlertRapidAscent
	case avgVerticalSpeed < -t.AvgSpeed:
		alert = AlertRapidDescent
	case t.RelativeHeight > 0 && math.Abs(relAltitude) > t.RelativeHeight:
		alert = AlertRelativeHeightExceeded
	case t.TotalHeight > 0 && altitude != nil && *altitude > t.TotalHeight:
		alert = AlertTotalHeightExceeded
	}
	return alert != AlertNone, alert
}
