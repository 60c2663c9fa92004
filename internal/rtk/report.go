package rtk

// PositionReport is the driver-owned position buffer. It is zeroed at the
// start of each connect-and-configure cycle and thereafter only ever written
// by the driver from within Receive.
type PositionReport struct {
	Lat float64 // decimal degrees
	Lon float64 // decimal degrees
	Alt float64 // meters above MSL

	HDOP float32
	VDOP float32
	EPH  float32 // estimated horizontal position error, m
	EPV  float32 // estimated vertical position error, m

	HeadingDeg     float32
	FixType        uint8 // receiver fix quality, see FixStatus
	SatellitesUsed uint8
}

// SatelliteInfo is the driver-owned satellite buffer. Optional: a nil
// buffer tells the driver satellite telemetry is not wanted.
type SatelliteInfo struct {
	Count uint8
}

// SurveyInStatus is one survey-in progress snapshot. Snapshots are replaced
// wholesale, never merged field by field.
type SurveyInStatus struct {
	DurationS      uint32  `json:"duration_s"`
	MeanAccuracyMM float32 `json:"mean_accuracy_mm"`
	Flags          uint8   `json:"flags"`
}

// Valid reports whether the surveyed position has reached the target
// accuracy.
func (s SurveyInStatus) Valid() bool {
	return s.Flags&1 != 0
}

// Active reports whether the survey-in is still running.
func (s SurveyInStatus) Active() bool {
	return (s.Flags>>1)&1 != 0
}
