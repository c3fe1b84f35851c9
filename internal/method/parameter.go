package method

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind says how a Parameter value is interpreted.
type Kind int

const (
	// Angle is a solar depression angle in degrees.
	Angle Kind = iota
	// MinutesAdjust is an offset in minutes from a reference prayer.
	MinutesAdjust
)

func (k Kind) String() string {
	switch k {
	case Angle:
		return "angle"
	case MinutesAdjust:
		return "minutes"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Parameter is a numeric calculation input tagged with its kind.
type Parameter struct {
	Value float64
	Kind  Kind
}

// AngleParam returns an angle-kind parameter.
func AngleParam(degrees float64) Parameter {
	return Parameter{Value: degrees, Kind: Angle}
}

// MinutesParam returns a minutes-kind parameter.
func MinutesParam(minutes float64) Parameter {
	return Parameter{Value: minutes, Kind: MinutesAdjust}
}

func (p Parameter) String() string {
	if p.Kind == MinutesAdjust {
		return fmt.Sprintf("%g min", p.Value)
	}
	return fmt.Sprintf("%g°", p.Value)
}

// Midnight selects the night interval midnight is centred on.
type Midnight int

const (
	// MidnightStandard is halfway from sunset to sunrise.
	MidnightStandard Midnight = iota
	// MidnightJafari is halfway from sunset to fajr.
	MidnightJafari
)

func (m Midnight) String() string {
	switch m {
	case MidnightStandard:
		return "standard"
	case MidnightJafari:
		return "jafari"
	default:
		return fmt.Sprintf("Midnight(%d)", int(m))
	}
}

// ParseMidnight resolves "standard" or "jafari".
func ParseMidnight(s string) (Midnight, error) {
	switch s {
	case "standard":
		return MidnightStandard, nil
	case "jafari":
		return MidnightJafari, nil
	default:
		return MidnightStandard, fmt.Errorf("unknown midnight method %q: must be standard or jafari", s)
	}
}

// ParseParameter reads a value such as "18", "18°", "90 min" or "90m".
// A plain number is an angle.
func ParseParameter(s string) (Parameter, error) {
	v := strings.TrimSpace(s)
	kind := Angle
	switch {
	case strings.HasSuffix(v, "min"):
		v, kind = strings.TrimSuffix(v, "min"), MinutesAdjust
	case strings.HasSuffix(v, "m"):
		v, kind = strings.TrimSuffix(v, "m"), MinutesAdjust
	case strings.HasSuffix(v, "°"):
		v = strings.TrimSuffix(v, "°")
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return Parameter{}, fmt.Errorf("invalid parameter %q: want an angle like \"18\" or minutes like \"90 min\"", s)
	}
	return Parameter{Value: f, Kind: kind}, nil
}
