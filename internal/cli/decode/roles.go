package decode

import (
	"math"

	"github.com/ColonelBlimp/cwclip/internal/cluster"
	"github.com/ColonelBlimp/cwclip/internal/cw"
)

// gapOrder lists gap roles from shortest to longest with their ITU length.
var gapOrder = []struct {
	kind  cw.ElementKind
	ratio float64
}{
	{cw.IntraGap, cw.IntraCharSpaceRatio},
	{cw.LetterGap, cw.InterCharSpaceRatio},
	{cw.WordGap, cw.WordSpaceRatio},
}

// markRoles maps each ON cluster index to dot (rank 0) or dash.
func markRoles(centers []float64) []cw.ElementKind {
	roles := make([]cw.ElementKind, len(centers))
	for idx, rank := range cluster.Ranks(centers) {
		if rank == 0 {
			roles[idx] = cw.DotMark
		} else {
			roles[idx] = cw.DashMark
		}
	}
	return roles
}

// rankedGapRoles maps each OFF cluster index by rank: intra, letter, then word
// for every longer class.
func rankedGapRoles(centers []float64) []cw.ElementKind {
	roles := make([]cw.ElementKind, len(centers))
	for idx, rank := range cluster.Ranks(centers) {
		if rank >= len(gapOrder) {
			rank = len(gapOrder) - 1
		}
		roles[idx] = gapOrder[rank].kind
	}
	return roles
}

// nearestGapRoles maps each OFF cluster index to the role whose ITU length,
// in units of dot, is closest in log ratio. Several classes may share a role.
func nearestGapRoles(centers []float64, dot float64) []cw.ElementKind {
	roles := make([]cw.ElementKind, len(centers))
	for idx, c := range centers {
		best, bestCost := 0, math.Inf(1)
		for r, g := range gapOrder {
			if cost := math.Abs(math.Log(c / (dot * g.ratio))); cost < bestCost {
				best, bestCost = r, cost
			}
		}
		roles[idx] = gapOrder[best].kind
	}
	return roles
}

// distinctRoles counts the different roles in roles.
func distinctRoles(roles []cw.ElementKind) int {
	seen := make(map[cw.ElementKind]struct{}, len(roles))
	for _, r := range roles {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// fittedGapRoles handles fewer OFF classes than gap roles. Each class gets the
// role whose ITU length, in units of dot, is closest in log ratio, keeping
// roles strictly increasing with rank. Ties go to the shorter roles.
func fittedGapRoles(centers []float64, dot float64) []cw.ElementKind {
	order := cluster.Rank(centers)
	n := len(order)

	best := []int(nil)
	bestCost := math.Inf(1)
	var choose func(start int, picked []int)
	choose = func(start int, picked []int) {
		if len(picked) == n {
			cost := 0.0
			for i, role := range picked {
				expected := dot * gapOrder[role].ratio
				cost += math.Abs(math.Log(centers[order[i]] / expected))
			}
			if cost < bestCost {
				bestCost = cost
				best = append([]int(nil), picked...)
			}
			return
		}
		for r := start; r < len(gapOrder); r++ {
			choose(r+1, append(picked, r))
		}
	}
	choose(0, make([]int, 0, n))

	roles := make([]cw.ElementKind, len(centers))
	for i, idx := range order {
		roles[idx] = gapOrder[best[i]].kind
	}
	return roles
}
