package layout

import (
	"github.com/wippyai/compound-bind/binder/internal/types"
)

// Offsets computes packed running-sum offsets for a sequence of member
// sizes: offset[i] is the sum of all preceding sizes, offset[0] is 0.
func Offsets(sizes []int) []int {
	offsets := make([]int, len(sizes))
	total := 0
	for i, s := range sizes {
		offsets[i] = total
		total += s
	}
	return offsets
}

// Apply assigns packed offsets to members in declaration order and returns
// the total record size. Offsets are recomputed from member sizes rather
// than trusted from the backend, so the layout always matches how values
// are serialized into a packed buffer.
func Apply(members []types.Member) int {
	total := 0
	for i := range members {
		members[i].Offset = total
		total += members[i].Info.TotalSize()
	}
	return total
}
