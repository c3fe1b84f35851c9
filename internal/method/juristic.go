package method

import (
	"errors"
	"fmt"
)

// ErrUnknownSchool is returned for a juristic school outside the known set.
var ErrUnknownSchool = errors.New("unknown juristic school")

// School is a juristic school for Asr.
type School int

const (
	// Standard covers Shafi'i, Maliki and Hanbali: shadow length 1.
	Standard School = iota
	// Hanafi uses shadow length 2.
	Hanafi
)

func (s School) String() string {
	switch s {
	case Standard:
		return "standard"
	case Hanafi:
		return "hanafi"
	default:
		return fmt.Sprintf("School(%d)", int(s))
	}
}

// ParseSchool accepts "standard", "shafi", "hanafi" or the Al Adhan school
// numbers "0" and "1".
func ParseSchool(s string) (School, error) {
	switch s {
	case "standard", "shafi", "0":
		return Standard, nil
	case "hanafi", "1":
		return Hanafi, nil
	default:
		return Standard, fmt.Errorf("%w %q: must be standard or hanafi", ErrUnknownSchool, s)
	}
}

// Juristic holds the shadow-length multiplier used to compute Asr.
type Juristic struct {
	shadow int
}

// JuristicFromSchool returns the multiplier for a school.
func JuristicFromSchool(s School) (Juristic, error) {
	switch s {
	case Standard:
		return Juristic{shadow: 1}, nil
	case Hanafi:
		return Juristic{shadow: 2}, nil
	default:
		return Juristic{}, fmt.Errorf("%w: %v", ErrUnknownSchool, s)
	}
}

// NewJuristic wraps a raw shadow multiplier. Values other than 1 and 2 are
// used as given until Normalized is called.
func NewJuristic(shadow int) Juristic {
	return Juristic{shadow: shadow}
}

// Shadow returns the multiplier. The zero Juristic behaves as Standard.
func (j Juristic) Shadow() int {
	if j.shadow == 0 {
		return 1
	}
	return j.shadow
}

// Detect returns Hanafi for a multiplier of 2 and Standard otherwise.
func (j Juristic) Detect() School {
	if j.shadow == 2 {
		return Hanafi
	}
	return Standard
}

// Normalized returns the Juristic of the detected school, rewriting any
// multiplier other than 2 to 1.
func (j Juristic) Normalized() Juristic {
	if j.Detect() == Hanafi {
		return Juristic{shadow: 2}
	}
	return Juristic{shadow: 1}
}
