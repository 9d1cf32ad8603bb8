package tracking

import "testing"

func alt(v float64) *float64 { return &v }

func TestEvaluateAlertDefaults(t *testing.T) {
	th := DefaultThresholds()

	danger, alert := EvaluateAlert(th, 0, 0, alt(1500))
	if danger || alert != AlertNone {
		t.Fatalf("calm sample must not alert, got %v/%v", danger, alert)
	}

	// height thresholds default to 0 which means disabled, not zero
	// tolerance
	danger, alert = EvaluateAlert(th, 0, 5000, alt(9000))
	if danger || alert != AlertNone {
		t.Fatalf("disabled height thresholds fired: %v/%v", danger, alert)
	}
}

func TestEvaluateAlertRapidAscentDescent(t *testing.T) {
	th := Thresholds{AvgSpeed: 600}

	danger, alert := EvaluateAlert(th, 700, 0, alt(100))
	if !danger || alert != AlertRapidAscent {
		t.Fatalf("got %v/%v", danger, alert)
	}

	danger, alert = EvaluateAlert(th, -700, 0, alt(100))
	if !danger || alert != AlertRapidDescent {
		t.Fatalf("got %v/%v", danger, alert)
	}

	// strictly greater than the threshold
	danger, alert = EvaluateAlert(th, 600, 0, alt(100))
	if danger || alert != AlertNone {
		t.Fatalf("exactly at threshold must not fire: %v/%v", danger, alert)
	}

	danger, alert = EvaluateAlert(th, 500, 0, alt(100))
	if danger || alert != AlertNone {
		t.Fatalf("below threshold fired: %v/%v", danger, alert)
	}
}

func TestEvaluateAlertRelativeHeight(t *testing.T) {
	th := Thresholds{RelativeHeight: 100, AvgSpeed: 600}

	danger, alert := EvaluateAlert(th, 0, 150, alt(1000))
	if !danger || alert != AlertRelativeHeightExceeded {
		t.Fatalf("got %v/%v", danger, alert)
	}

	// magnitude in both directions
	danger, alert = EvaluateAlert(th, 0, -150, alt(1000))
	if !danger || alert != AlertRelativeHeightExceeded {
		t.Fatalf("descent below start must fire too, got %v/%v", danger, alert)
	}

	danger, alert = EvaluateAlert(th, 0, 90, alt(1000))
	if danger || alert != AlertNone {
		t.Fatalf("within threshold fired: %v/%v", danger, alert)
	}
}

func TestEvaluateAlertTotalHeight(t *testing.T) {
	th := Thresholds{TotalHeight: 3000, AvgSpeed: 600}

	danger, alert := EvaluateAlert(th, 0, 0, alt(3100))
	if !danger || alert != AlertTotalHeightExceeded {
		t.Fatalf("got %v/%v", danger, alert)
	}

	danger, alert = EvaluateAlert(th, 0, 0, alt(2900))
	if danger || alert != AlertNone {
		t.Fatalf("below ceiling fired: %v/%v", danger, alert)
	}

	// no altitude yet, no total-height verdict
	danger, alert = EvaluateAlert(th, 0, 0, nil)
	if danger || alert != AlertNone {
		t.Fatalf("nil altitude fired: %v/%v", danger, alert)
	}
}

func TestEvaluateAlertPriority(t *testing.T) {
	th := Thresholds{RelativeHeight: 10, TotalHeight: 10, AvgSpeed: 10}

	// every condition true at once; rapid ascent wins
	danger, alert := EvaluateAlert(th, 50, 50, alt(50))
	if !danger || alert != AlertRapidAscent {
		t.Fatalf("got %v/%v", danger, alert)
	}

	danger, alert = EvaluateAlert(th, 0, 50, alt(50))
	if !danger || alert != AlertRelativeHeightExceeded {
		t.Fatalf("got %v/%v", danger, alert)
	}
}
