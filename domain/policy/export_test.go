package policy

import "github.com/reglet-dev/reglet-permissions/domain/ports"

// CachedGrantSets reports how many compiled grant sets p holds.
func CachedGrantSets(p ports.Policy) int {
	n := 0
	p.(*Policy).cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
