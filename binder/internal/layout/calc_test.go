package layout

import (
	"testing"

	"github.com/wippyai/compound-bind/binder/internal/types"
)

func TestOffsets(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		want  []int
	}{
		{"empty", nil, []int{}},
		{"single", []int{8}, []int{0}},
		{"spec example", []int{4, 8, 2}, []int{0, 4, 12}},
		{"zero size member", []int{4, 0, 2}, []int{0, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Offsets(tt.sizes)
			if len(got) != len(tt.want) {
				t.Fatalf("Offsets len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("offset[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestApply_RunningSum(t *testing.T) {
	members := []types.Member{
		{Name: "a", Info: types.TypeInfo{Size: 4}},
		{Name: "b", Info: types.TypeInfo{Size: 8}},
		{Name: "c", Info: types.TypeInfo{Size: 2}},
	}

	total := Apply(members)
	if total != 14 {
		t.Errorf("total = %d, want 14", total)
	}
	if members[0].Offset != 0 {
		t.Errorf("first offset = %d, want 0", members[0].Offset)
	}

	// offset[i] = sum of preceding sizes
	sum := 0
	for i, m := range members {
		if m.Offset != sum {
			t.Errorf("offset[%d] = %d, want %d", i, m.Offset, sum)
		}
		sum += m.Info.TotalSize()
	}
}

func TestApply_ArrayMember(t *testing.T) {
	members := []types.Member{
		{Name: "v", Info: types.TypeInfo{Size: 8, Dims: []int{3}}},
		{Name: "n", Info: types.TypeInfo{Size: 4}},
	}

	total := Apply(members)
	if members[1].Offset != 24 {
		t.Errorf("offset after [3]float64 = %d, want 24", members[1].Offset)
	}
	if total != 28 {
		t.Errorf("total = %d, want 28", total)
	}
}
