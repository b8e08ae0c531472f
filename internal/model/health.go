package model

// HealthLevel buckets a health score for display.
type HealthLevel string

const (
	HealthPoor      HealthLevel = "Poor"
	HealthFair      HealthLevel = "Fair"
	HealthGood      HealthLevel = "Good"
	HealthExcellent HealthLevel = "Excellent"
)

// LevelForScore maps a 0-100 score to its display bucket.
func LevelForScore(score float64) HealthLevel {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthGood
	case score >= 40:
		return HealthFair
	default:
		return HealthPoor
	}
}

// HealthScore is the composite financial-health result.
// LowConfidence marks scores computed from little or no income data.
type HealthScore struct {
	TotalScore      float64
	Level           HealthLevel
	Recommendations []string
	LowConfidence   bool
}
