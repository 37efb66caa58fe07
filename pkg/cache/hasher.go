package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"trustflow/pkg/domain"
)

// ComputeFlowHash computes a cache key for a computeFlow request: the
// source, sink, requested ceiling, and the full trust-edge set. Edges are
// sorted canonically before hashing so that callers submitting the same
// edge set in a different order still hit the cache.
func ComputeFlowHash(source, sink domain.Address, requested domain.Amount, edges []domain.Edge) string {
	data := edgesToCanonical(source, sink, requested, edges)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

func edgesToCanonical(source, sink domain.Address, requested domain.Amount, edges []domain.Edge) []byte {
	sorted := make([]domain.Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.From != b.From {
			return a.From.Less(b.From)
		}
		if a.To != b.To {
			return a.To.Less(b.To)
		}
		if a.Token != b.Token {
			return a.Token.Less(b.Token)
		}
		return a.Capacity.Cmp(b.Capacity) < 0
	})

	var result []byte
	result = append(result, []byte(fmt.Sprintf("s:%s,t:%s,r:%s;", source, sink, requested))...)
	for _, e := range sorted {
		result = append(result, []byte(fmt.Sprintf("e:%s:%s:%s:%s;", e.From, e.To, e.Token, e.Capacity))...)
	}
	return result
}

// BuildSolveKey builds a cache key for a cached computeFlow result.
func BuildSolveKey(flowHash string) string {
	return fmt.Sprintf("flow:%s", flowHash)
}

// QuickHash is a general-purpose hash for arbitrary data.
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash is a 16-character hash for arbitrary data.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
