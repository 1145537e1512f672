package solver

import "github.com/nextmv-examples/truckfleet/internal/model"

// pairKey canonicalizes an unordered pair of package ids so same[p1,p2] is
// only ever created and looked up in one order, never both.
type pairKey struct {
	A, B model.PackageID
}

// canonicalPair orders the two ids so (p1,p2) and (p2,p1) always produce
// the same key.
func canonicalPair(p1, p2 model.PackageID) pairKey {
	if p1.String() <= p2.String() {
		return pairKey{A: p1, B: p2}
	}
	return pairKey{A: p2, B: p1}
}

// allPairs returns every unordered, distinct pair from ids.
func allPairs(ids []model.PackageID) []pairKey {
	var pairs []pairKey
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pairs = append(pairs, canonicalPair(ids[i], ids[j]))
		}
	}
	return pairs
}
