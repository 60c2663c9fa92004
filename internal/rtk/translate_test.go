package rtk

import "testing"

func TestFixStatusTable(t *testing.T) {
	tests := []struct {
		fixType uint8
		want    int8
	}{
		{0, StatusNoFix},
		{1, StatusNoFix},
		{2, StatusNoFix},
		{3, StatusFix},
		{4, StatusAugmentedFix},
		{5, StatusAugmentedFix},
		{6, StatusAugmentedFix},
		{7, StatusNoFix},
		{8, StatusDeadReckoning},
		{9, StatusNoFix},
		{42, StatusNoFix},
		{255, StatusNoFix},
	}
	for _, tt := range tests {
		if got := FixStatus(tt.fixType); got != tt.want {
			t.Errorf("FixStatus(%d) = %d, want %d", tt.fixType, got, tt.want)
		}
	}
}

func TestFixStatusTotal(t *testing.T) {
	// Every possible input maps to one of the four levels.
	for i := 0; i < 256; i++ {
		got := FixStatus(uint8(i))
		switch got {
		case StatusNoFix, StatusFix, StatusDeadReckoning, StatusAugmentedFix:
		default:
			t.Fatalf("FixStatus(%d) = %d, not a defined status", i, got)
		}
	}
}

func TestTranslate(t *testing.T) {
	rep := &PositionReport{
		Lat:            10.0,
		Lon:            20.0,
		Alt:            5.0,
		EPH:            0.8,
		EPV:            1.4,
		HeadingDeg:     271.5,
		FixType:        3,
		SatellitesUsed: 12,
	}

	fix := Translate(rep)

	if fix.Latitude != 10.0 || fix.Longitude != 20.0 || fix.Altitude != 5.0 {
		t.Errorf("coordinates = (%v, %v, %v), want (10, 20, 5)", fix.Latitude, fix.Longitude, fix.Altitude)
	}
	if fix.Status != StatusFix {
		t.Errorf("status = %d, want %d", fix.Status, StatusFix)
	}
	if fix.FrameID != "rtk_base" {
		t.Errorf("frame_id = %q, want rtk_base", fix.FrameID)
	}
	if fix.SatellitesUsed != 12 {
		t.Errorf("satellites_used = %d, want 12", fix.SatellitesUsed)
	}
	if fix.HeadingDeg != 271.5 {
		t.Errorf("heading = %v, want 271.5", fix.HeadingDeg)
	}
	if fix.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestTranslateCovariance(t *testing.T) {
	rep := &PositionReport{EPH: 2.0, EPV: 3.0}
	fix := Translate(rep)

	if fix.CovarianceType != CovarianceApproximated {
		t.Errorf("covariance type = %q, want %q", fix.CovarianceType, CovarianceApproximated)
	}

	want := [9]float64{2.0, 0, 0, 0, 2.0, 0, 0, 0, 3.0}
	if fix.PositionCovariance != want {
		t.Errorf("covariance = %v, want %v", fix.PositionCovariance, want)
	}
}
