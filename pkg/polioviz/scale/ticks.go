package scale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns the step between round ticks for about count ticks
// over [start, stop]. A positive result is the step itself; a negative result
// -k means a step of 1/k, which keeps sub-unit steps exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// Ticks returns roughly count round values between start and stop, inclusive,
// in the same direction as the bounds.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		r0, r1 := math.Round(start/inc), math.Round(stop/inc)
		if r0*inc < start {
			r0++
		}
		if r1*inc > stop {
			r1--
		}
		for r := r0; r <= r1; r++ {
			ticks = append(ticks, r*inc)
		}
	} else {
		inc = -inc
		r0, r1 := math.Round(start*inc), math.Round(stop*inc)
		if r0/inc < start {
			r0++
		}
		if r1/inc > stop {
			r1--
		}
		for r := r0; r <= r1; r++ {
			ticks = append(ticks, r/inc)
		}
	}

	if reversed {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}
