package swarm

import "math"

const DefaultPieceSizeMB = 10.0

// PlanPieces returns the number of logical pieces for a file. Non-positive
// sizes yield a single degenerate piece and the result is never below 1.
func PlanPieces(sizeMB, pieceSizeMB float64) int {
	if !(pieceSizeMB > 0) || math.IsInf(pieceSizeMB, 0) {
		pieceSizeMB = DefaultPieceSizeMB
	}
	if !(sizeMB > 0) || math.IsInf(sizeMB, 0) {
		return 1
	}
	return max(1, int(math.Ceil(sizeMB/pieceSizeMB)))
}
