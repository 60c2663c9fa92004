package rtk

import "time"

// Outbound fix status levels. The receiver's many raw fix qualities
// deliberately collapse into these four.
const (
	StatusNoFix         int8 = -1
	StatusFix           int8 = 0
	StatusDeadReckoning int8 = 1
	StatusAugmentedFix  int8 = 2
)

// CovarianceApproximated tags a covariance derived from error estimates
// rather than measured.
const CovarianceApproximated = "approximated"

// NavFix is the outbound position telemetry message, published as JSON.
type NavFix struct {
	Timestamp      time.Time `json:"timestamp"`
	FrameID        string    `json:"frame_id"`
	Latitude       float64   `json:"lat"`
	Longitude      float64   `json:"lon"`
	Altitude       float64   `json:"alt"`
	Status         int8      `json:"status"`
	SatellitesUsed uint8     `json:"satellites_used"`
	HeadingDeg     float32   `json:"heading_deg"`

	// Row-major 3x3, diagonal only; cross terms stay zero.
	PositionCovariance [9]float64 `json:"position_covariance"`
	CovarianceType     string     `json:"covariance_type"`
}

// FixStatus maps the receiver's fix_type to the outbound status level.
// Total: any untabulated value is no-fix.
func FixStatus(fixType uint8) int8 {
	switch fixType {
	case 3:
		return StatusFix
	case 4, 5, 6:
		return StatusAugmentedFix
	case 8:
		return StatusDeadReckoning
	default:
		return StatusNoFix
	}
}

// Translate maps a decoded position report to the outbound schema. Pure
// apart from the timestamp, which is the translation-time wall clock (the
// driver supplies none in this integration).
func Translate(rep *PositionReport) NavFix {
	fix := NavFix{
		Timestamp:      time.Now(),
		FrameID:        "rtk_base",
		Latitude:       rep.Lat,
		Longitude:      rep.Lon,
		Altitude:       rep.Alt,
		Status:         FixStatus(rep.FixType),
		SatellitesUsed: rep.SatellitesUsed,
		HeadingDeg:     rep.HeadingDeg,
		CovarianceType: CovarianceApproximated,
	}
	fix.PositionCovariance[0] = float64(rep.EPH)
	fix.PositionCovariance[4] = float64(rep.EPH)
	fix.PositionCovariance[8] = float64(rep.EPV)
	return fix
}
