package kinematics

import (
	"math"
	"math/rand"

	"github.com/Tiennd11/ur3-robot-ik/referenceframe"
)

// structuredSeeds are starting configurations covering the arm's major
// kinematic branches: elbow up/down, shoulder forward/rear, wrist flip.
func structuredSeeds() [][]float64 {
	halfPi := math.Pi / 2
	return [][]float64{
		{0, -halfPi, halfPi, -halfPi, -halfPi, 0},           // ready
		{0, 0, 0, 0, 0, 0},                                  // home
		{0, -halfPi, -halfPi, 0, halfPi, 0},                 // elbow up
		{math.Pi, -halfPi, halfPi, -halfPi, halfPi, 0},      // rear
		{0, -math.Pi / 4, math.Pi / 4, -halfPi, -halfPi, 0}, // mid
		{math.Pi, -halfPi, -halfPi, halfPi, halfPi, 0},      // rear elbow
		{0, -math.Pi, halfPi, 0, -halfPi, math.Pi},          // flip
		{-math.Pi, -halfPi, halfPi, halfPi, -halfPi, 0},     // left rear
	}
}

// generateSeeds returns the deterministic seed battery for one solve: the
// structured branch seeds followed by the configured number of pseudo-random
// configurations drawn uniformly from (-pi, pi) per joint off a fixed source.
func (ik *Solver) generateSeeds() [][]referenceframe.Input {
	structured := structuredSeeds()
	seeds := make([][]referenceframe.Input, 0, len(structured)+ik.opts.RandomSeeds)
	for _, s := range structured {
		seeds = append(seeds, referenceframe.FloatsToInputs(s))
	}

	//nolint:gosec
	rSeed := rand.New(rand.NewSource(ik.opts.RandomSeed))
	for i := 0; i < ik.opts.RandomSeeds; i++ {
		seed := make([]referenceframe.Input, referenceframe.NumJoints)
		for j := range seed {
			seed[j] = referenceframe.Input{Value: rSeed.Float64()*2*math.Pi - math.Pi}
		}
		seeds = append(seeds, seed)
	}
	return seeds
}
