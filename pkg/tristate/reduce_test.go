package tristate

import (
	"iter"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// counting yields vals in order and records how many were pulled.
func counting[T any](vals []Value[T], pulled *int) iter.Seq[Value[T]] {
	return func(yield func(Value[T]) bool) {
		for _, v := range vals {
			*pulled++
			if !yield(v) {
				return
			}
		}
	}
}

func TestCollectPrecedence(t *testing.T) {
	tests := []struct {
		name string
		in   []Value[int]
		want Value[[]int]
	}{
		{"empty", nil, Present([]int{})},
		{"all present", []Value[int]{Present(1), Present(2)}, Present([]int{1, 2})},
		{"null wins over present", []Value[int]{Present(1), Null[int](), Present(3)}, Null[[]int]()},
		{"absent wins over null", []Value[int]{Null[int](), Present(2), Absent[int]()}, Absent[[]int]()},
		{"absent first", []Value[int]{Absent[int](), Null[int]()}, Absent[[]int]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollectSlice(tt.in))
		})
	}
}

func TestCollectShortCircuitsOnAbsentOnly(t *testing.T) {
	t.Run("absent stops the scan", func(t *testing.T) {
		pulled := 0
		in := []Value[int]{Present(1), Absent[int](), Present(3), Null[int]()}
		got := Collect(counting(in, &pulled))
		assert.True(t, got.IsAbsent())
		assert.Equal(t, 2, pulled)
	})
	t.Run("null scans to the end", func(t *testing.T) {
		pulled := 0
		in := []Value[int]{Null[int](), Present(2), Present(3)}
		got := Collect(counting(in, &pulled))
		assert.True(t, got.IsNull())
		assert.Equal(t, 3, pulled)
	})
}

func TestSumAndProduct(t *testing.T) {
	assert.Equal(t, Present(6), Sum(slices.Values([]Value[int]{Present(1), Present(2), Present(3)})))
	assert.Equal(t, Present(0), Sum(slices.Values([]Value[int]{})))
	assert.Equal(t, Null[int](), Sum(slices.Values([]Value[int]{Present(1), Null[int]()})))
	assert.Equal(t, Absent[int](), Sum(slices.Values([]Value[int]{Null[int](), Absent[int]()})))

	assert.Equal(t, Present(24.0), Product(slices.Values([]Value[float64]{Present(2.0), Present(3.0), Present(4.0)})))
	assert.Equal(t, Present(uint8(1)), Product(slices.Values([]Value[uint8]{})))
	assert.Equal(t, Null[float64](), Product(slices.Values([]Value[float64]{Null[float64](), Present(3.0)})))
}

func TestFold(t *testing.T) {
	concat := func(acc string, s string) string { return acc + s }
	in := []Value[string]{Present("a"), Present("b")}
	assert.Equal(t, Present(">ab"), Fold(slices.Values(in), ">", concat))
}

func TestCollectMap(t *testing.T) {
	in := map[string]Value[int]{"a": Present(1), "b": Present(2)}
	assert.Equal(t, Present(map[string]int{"a": 1, "b": 2}), CollectMap(maps.All(in)))

	in["c"] = Null[int]()
	assert.Equal(t, Null[map[string]int](), CollectMap(maps.All(in)))

	in["d"] = Absent[int]()
	assert.Equal(t, Absent[map[string]int](), CollectMap(maps.All(in)))

	assert.Equal(t, Present(map[string]int{}), CollectMap(maps.All(map[string]Value[int]{})))
}
