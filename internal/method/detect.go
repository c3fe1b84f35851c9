package method

import "math"

// tolerance is the coarse equality used when matching parameter values.
const tolerance = 0.001

type rule struct {
	preset   Preset
	fajr     []float64
	maghrib  Parameter
	isha     []float64
	ishaKind Kind
	midnight Midnight
}

// rules are tried in order; the first match wins. Singapore and JAKIM share
// parameters, so a JAKIM method is only recognised by its tag.
var rules = []rule{
	{IthnaAshari, []float64{16}, AngleParam(4), []float64{14}, Angle, MidnightJafari},
	{Karachi, []float64{18}, MinutesParam(0), []float64{18}, Angle, MidnightStandard},
	{ISNA, []float64{15}, MinutesParam(0), []float64{15}, Angle, MidnightStandard},
	{MWL, []float64{18}, MinutesParam(0), []float64{17}, Angle, MidnightStandard},
	{UmmAlQura, []float64{19, 18.5}, MinutesParam(0), []float64{90, 120}, MinutesAdjust, MidnightStandard},
	{Egyptian, []float64{19.5}, MinutesParam(0), []float64{17.5}, Angle, MidnightStandard},
	{UOIF, []float64{12}, MinutesParam(0), []float64{12}, Angle, MidnightStandard},
	{Singapore, []float64{20}, MinutesParam(0), []float64{18}, Angle, MidnightStandard},
	{Tehran, []float64{17.7}, AngleParam(4.5), []float64{14}, Angle, MidnightJafari},
}

// Detect returns the preset whose parameters m matches, or Custom.
func Detect(m Method) Preset {
	if m.preset == JAKIM {
		return JAKIM
	}
	for _, r := range rules {
		if r.matches(m) {
			return r.preset
		}
	}
	return Custom
}

func (r rule) matches(m Method) bool {
	return m.fajr.Kind == Angle && anyNear(m.fajr.Value, r.fajr) &&
		m.maghrib.Kind == r.maghrib.Kind && near(m.maghrib.Value, r.maghrib.Value) &&
		m.isha.Kind == r.ishaKind && anyNear(m.isha.Value, r.isha) &&
		m.midnight == r.midnight
}

func anyNear(v float64, candidates []float64) bool {
	for _, c := range candidates {
		if near(v, c) {
			return true
		}
	}
	return false
}

func near(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}
