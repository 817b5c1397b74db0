package coord

// TickInterval picks a round tick spacing for a sequence axis so that at
// most maxTicks ticks are emitted. Candidate spacings follow the usual
// 1-2-5 progression (10, 20, 50, 100, ...).
func TickInterval(sequenceLength, maxTicks int) int {
	if sequenceLength <= 0 || maxTicks <= 0 {
		return 0
	}

	base := 10
	for {
		for _, mult := range []int{1, 2, 5} {
			interval := base * mult
			if sequenceLength/interval < maxTicks {
				return interval
			}
		}
		base *= 10
	}
}

// Ticks returns the tick positions for the axis, starting at the first
// interval boundary. Position 0 is omitted: both linear and circular maps
// mark the origin separately.
func Ticks(sequenceLength, interval int) []int {
	if interval <= 0 {
		return nil
	}
	var ticks []int
	for pos := interval; pos < sequenceLength; pos += interval {
		ticks = append(ticks, pos)
	}
	return ticks
}
