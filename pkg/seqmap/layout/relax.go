package layout

import (
	"cmp"
	"math"
	"slices"
)

// RelaxIterations is the fixed number of force-update steps the relaxer
// performs. There is no convergence check: the fixed count bounds the
// worst-case cost and near-convergence is sufficient for visual purposes.
const RelaxIterations = 75

// RelaxConfig tunes the spring model used to spread displaced labels apart.
// The zero value is replaced by the defaults below.
type RelaxConfig struct {
	// MaxInteraction caps the distance at which two labels repel each other.
	MaxInteraction float64

	// Repulsion scales the pairwise push between nearby labels.
	Repulsion float64

	// Attraction scales the pull back toward each label's target.
	Attraction float64

	// CollisionGap is the minimum clearance between label edges; the
	// collision force is keyed to label half-widths plus this gap.
	CollisionGap float64

	// MaxStep caps the displacement applied per iteration.
	MaxStep float64
}

// DefaultRelaxConfig returns the tuned defaults.
func DefaultRelaxConfig() RelaxConfig {
	return RelaxConfig{
		MaxInteraction: 60,
		Repulsion:      1.5,
		Attraction:     0.15,
		CollisionGap:   4,
		MaxStep:        6,
	}
}

func (c *RelaxConfig) applyDefaults() {
	d := DefaultRelaxConfig()
	if c.MaxInteraction == 0 {
		c.MaxInteraction = d.MaxInteraction
	}
	if c.Repulsion == 0 {
		c.Repulsion = d.Repulsion
	}
	if c.Attraction == 0 {
		c.Attraction = d.Attraction
	}
	if c.CollisionGap == 0 {
		c.CollisionGap = d.CollisionGap
	}
	if c.MaxStep == 0 {
		c.MaxStep = d.MaxStep
	}
}

// Relax spreads the displaced labels of one row or layer apart along their
// shared axis. Nodes relax on the x coordinate only (for circular layouts
// the caller passes arc positions); the y coordinate stays at each node's
// target. Exactly RelaxIterations steps run regardless of input size, and
// the result is deterministic: no randomness, stable ordering.
func Relax(nodes []*LabelNode, cfg RelaxConfig) {
	if len(nodes) == 0 {
		return
	}
	cfg.applyDefaults()

	// Stable processing order keeps repeated passes identical.
	ordered := slices.Clone(nodes)
	slices.SortStableFunc(ordered, func(a, b *LabelNode) int {
		if c := cmp.Compare(a.Target.X, b.Target.X); c != 0 {
			return c
		}
		return cmp.Compare(a.FeatureID, b.FeatureID)
	})

	for _, n := range ordered {
		n.Resolved = n.Target
	}

	forces := make([]float64, len(ordered))
	for iter := 0; iter < RelaxIterations; iter++ {
		for i, n := range ordered {
			f := cfg.Attraction * (n.Target.X - n.Resolved.X)

			for j, m := range ordered {
				if i == j {
					continue
				}
				d := n.Resolved.X - m.Resolved.X
				dir := sign(d, i-j)
				dist := math.Abs(d)

				if dist < cfg.MaxInteraction {
					f += dir * cfg.Repulsion * (1 - dist/cfg.MaxInteraction)
				}

				if minSep := n.W/2 + m.W/2 + cfg.CollisionGap; dist < minSep {
					f += dir * cfg.Repulsion * (minSep - dist) / minSep
				}
			}
			forces[i] = clamp(f, cfg.MaxStep)
		}
		for i, n := range ordered {
			n.Resolved.X += forces[i]
		}
	}
}

// RelaxRows groups displaced nodes by row and relaxes each group
// independently. Inline nodes are left untouched.
func RelaxRows(nodes []*LabelNode, cfg RelaxConfig) {
	byRow := make(map[int][]*LabelNode)
	for _, n := range nodes {
		if n != nil && n.Displaced {
			byRow[n.Row] = append(byRow[n.Row], n)
		}
	}
	rows := make([]int, 0, len(byRow))
	for row := range byRow {
		rows = append(rows, row)
	}
	slices.Sort(rows)
	for _, row := range rows {
		Relax(byRow[row], cfg)
	}
}

// sign returns the direction of d, falling back to the index order when two
// labels sit at exactly the same position so ties break deterministically.
func sign(d float64, tie int) float64 {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	case tie > 0:
		return 1
	default:
		return -1
	}
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
