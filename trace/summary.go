package trace

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates one actor's rows.
type Summary struct {
	Actor    string
	Ticks    int
	Grounded int
	Landings int

	MeanSpeed   float64
	SpeedStdDev float64
	MaxSpeed    float64

	// Detaches counts leave-ground events by reason.
	Detaches map[string]int
	// WallModes counts grounded ticks per wall mode.
	WallModes map[string]int
}

// Summarize aggregates the rows of actor.
func Summarize(rows []Row, actor string) Summary {
	s := Summary{Actor: actor, Detaches: map[string]int{}, WallModes: map[string]int{}}
	var speeds []float64
	prevGrounded := false
	for _, row := range rows {
		if row.Actor != actor {
			continue
		}
		s.Ticks++
		speeds = append(speeds, math.Hypot(row.VX, row.VY))

		grounded := row.State == "grounded"
		if grounded {
			s.Grounded++
			s.WallModes[row.WallMode]++
		}
		if row.JustLanded {
			s.Landings++
		}
		if prevGrounded && !grounded && row.Detach != "" {
			s.Detaches[row.Detach]++
		}
		prevGrounded = grounded
	}
	switch len(speeds) {
	case 0:
	case 1:
		s.MeanSpeed, s.MaxSpeed = speeds[0], speeds[0]
	default:
		s.MeanSpeed, s.SpeedStdDev = stat.MeanStdDev(speeds, nil)
		s.MaxSpeed = floats.Max(speeds)
	}
	return s
}

// GroundedRatio is the share of ticks spent grounded.
func (s Summary) GroundedRatio() float64 {
	if s.Ticks == 0 {
		return 0
	}
	return float64(s.Grounded) / float64(s.Ticks)
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d ticks, %.0f%% grounded, %d landings, speed mean %.2f sd %.2f max %.2f",
		s.Actor, s.Ticks, 100*s.GroundedRatio(), s.Landings, s.MeanSpeed, s.SpeedStdDev, s.MaxSpeed)
	if len(s.Detaches) > 0 {
		b.WriteString(", detaches")
		for _, k := range sortedKeys(s.Detaches) {
			fmt.Fprintf(&b, " %s=%d", k, s.Detaches[k])
		}
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
