package tristate

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatePredicates(t *testing.T) {
	tests := []struct {
		name     string
		v        Value[int]
		state    State
		absent   bool
		null     bool
		present  bool
		defined  bool
		nullish  bool
		length   int
		rendered string
	}{
		{name: "absent", v: Absent[int](), state: StateAbsent, absent: true, nullish: true, rendered: "(absent)"},
		{name: "null", v: Null[int](), state: StateNull, null: true, defined: true, nullish: true, rendered: "null"},
		{name: "present", v: Present(7), state: StatePresent, present: true, defined: true, length: 1, rendered: "7"},
		{name: "present zero", v: Present(0), state: StatePresent, present: true, defined: true, length: 1, rendered: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.state, tt.v.State())
			assert.Equal(t, tt.absent, tt.v.IsAbsent())
			assert.Equal(t, tt.null, tt.v.IsNull())
			assert.Equal(t, tt.present, tt.v.IsPresent())
			assert.Equal(t, tt.defined, tt.v.IsDefined())
			assert.Equal(t, tt.nullish, tt.v.IsNullish())
			assert.Equal(t, tt.nullish, tt.v.IsNil())
			assert.Equal(t, tt.absent, tt.v.IsZero())
			assert.Equal(t, tt.length, tt.v.Len())
			assert.Equal(t, tt.length == 0, tt.v.IsEmpty())
			assert.Equal(t, tt.rendered, tt.v.String())

			// exactly one of the three holds
			n := 0
			for _, b := range []bool{tt.v.IsAbsent(), tt.v.IsNull(), tt.v.IsPresent()} {
				if b {
					n++
				}
			}
			assert.Equal(t, 1, n)
		})
	}
}

func TestZeroValueIsAbsent(t *testing.T) {
	var v Value[string]
	assert.True(t, v.IsAbsent())
	assert.Equal(t, Absent[string](), v)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "absent", StateAbsent.String())
	assert.Equal(t, "null", StateNull.String())
	assert.Equal(t, "present", StatePresent.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestOf(t *testing.T) {
	assert.Equal(t, Present(3), Of(StatePresent, 3))
	assert.Equal(t, Null[int](), Of(StateNull, 3))
	assert.Equal(t, Absent[int](), Of(StateAbsent, 3))
	assert.Equal(t, Absent[int](), Of(State(42), 3))
}

func TestPredicateGuards(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	t.Run("IsPresentAnd", func(t *testing.T) {
		assert.True(t, Present(2).IsPresentAnd(even))
		assert.False(t, Present(3).IsPresentAnd(even))
		assert.False(t, Null[int]().IsPresentAnd(even))
		assert.False(t, Absent[int]().IsPresentAnd(even))
	})
	t.Run("IsAbsentOr", func(t *testing.T) {
		assert.True(t, Present(2).IsAbsentOr(even))
		assert.False(t, Present(3).IsAbsentOr(even))
		assert.False(t, Null[int]().IsAbsentOr(even))
		assert.True(t, Absent[int]().IsAbsentOr(even))
	})
	t.Run("IsNullOr", func(t *testing.T) {
		assert.True(t, Present(2).IsNullOr(even))
		assert.False(t, Present(3).IsNullOr(even))
		assert.True(t, Null[int]().IsNullOr(even))
		assert.True(t, Absent[int]().IsNullOr(even))
	})
}

func TestDefaultedExtraction(t *testing.T) {
	calls := 0
	fallback := func() int {
		calls++
		return 99
	}

	assert.Equal(t, 5, Present(5).UnwrapOr(1))
	assert.Equal(t, 1, Null[int]().UnwrapOr(1))
	assert.Equal(t, 1, Absent[int]().UnwrapOr(1))

	assert.Equal(t, 5, Present(5).UnwrapOrElse(fallback))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 99, Null[int]().UnwrapOrElse(fallback))
	assert.Equal(t, 99, Absent[int]().UnwrapOrElse(fallback))
	assert.Equal(t, 2, calls)

	assert.Equal(t, "x", Present("x").UnwrapOrZero())
	assert.Equal(t, "", Null[string]().UnwrapOrZero())
	assert.Equal(t, "", Absent[string]().UnwrapOrZero())

	assert.Equal(t, 5, Present(5).UnwrapOrNullDefault(-1, -2))
	assert.Equal(t, -1, Absent[int]().UnwrapOrNullDefault(-1, -2))
	assert.Equal(t, -2, Null[int]().UnwrapOrNullDefault(-1, -2))
}

func TestGetAndAny(t *testing.T) {
	v, ok := Present("a").Get()
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = Null[string]().Get()
	assert.False(t, ok)
	assert.Equal(t, "", v)

	assert.Equal(t, "a", Present("a").Any())
	assert.Nil(t, Null[string]().Any())
	assert.Nil(t, Absent[string]().Any())
}

func TestUnwrapPanicsNameTheState(t *testing.T) {
	assert.Equal(t, 4, Present(4).Unwrap())
	assert.PanicsWithValue(t, "tristate: called Unwrap on a Null value", func() {
		Null[int]().Unwrap()
	})
	assert.PanicsWithValue(t, "tristate: called Unwrap on an Absent value", func() {
		Absent[int]().Unwrap()
	})
}

func TestExpectPanicsWithMessage(t *testing.T) {
	assert.Equal(t, "v", Present("v").Expect("needed v"))
	assert.PanicsWithValue(t, "the value was required: value was Null", func() {
		Null[string]().Expect("the value was required")
	})
	assert.PanicsWithValue(t, "the value was required: value was Absent", func() {
		Absent[string]().Expect("the value was required")
	})
}

func TestOkOr(t *testing.T) {
	errMissing := errors.New("missing")

	v, err := Present(1).OkOr(errMissing)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = Null[int]().OkOr(errMissing)
	assert.ErrorIs(t, err, errMissing)
	_, err = Absent[int]().OkOr(errMissing)
	assert.ErrorIs(t, err, errMissing)

	called := false
	_, err = Present(1).OkOrElse(func() error { called = true; return errMissing })
	require.NoError(t, err)
	assert.False(t, called)
	_, err = Absent[int]().OkOrElse(func() error { called = true; return errMissing })
	assert.ErrorIs(t, err, errMissing)
	assert.True(t, called)
}

func TestResult(t *testing.T) {
	v, err := Present(8).Result()
	require.NoError(t, err)
	assert.Equal(t, 8, v)

	_, err = Null[int]().Result()
	assert.ErrorIs(t, err, ErrNull)
	assert.ErrorIs(t, err, ErrNotPresent)
	assert.NotErrorIs(t, err, ErrAbsent)

	_, err = Absent[int]().Result()
	assert.ErrorIs(t, err, ErrAbsent)
	assert.ErrorIs(t, err, ErrNotPresent)
}

func TestTake(t *testing.T) {
	states := []Value[int]{Present(1), Null[int](), Absent[int]()}
	for _, start := range states {
		t.Run(start.State().String(), func(t *testing.T) {
			slot := start
			first := slot.Take()
			assert.Equal(t, start, first)
			assert.True(t, slot.IsAbsent())

			second := slot.Take()
			assert.True(t, second.IsAbsent())
			assert.True(t, slot.IsAbsent())
		})
	}
}

func TestTakeIf(t *testing.T) {
	is42 := func(v *int) bool { return *v == 42 }

	x := Present(42)
	assert.Equal(t, Present(42), x.TakeIf(is42))
	assert.Equal(t, Absent[int](), x)

	y := Present(10)
	assert.Equal(t, Absent[int](), y.TakeIf(is42))
	assert.Equal(t, Present(10), y)

	z := Null[int]()
	assert.Equal(t, Absent[int](), z.TakeIf(is42))
	assert.Equal(t, Null[int](), z)

	bump := Present(1)
	bump.TakeIf(func(v *int) bool { *v += 1; return false })
	assert.Equal(t, Present(2), bump)
}

func TestReplace(t *testing.T) {
	x := Present(2)
	assert.Equal(t, Present(2), x.Replace(5))
	assert.Equal(t, Present(5), x)

	y := Null[int]()
	assert.Equal(t, Null[int](), y.Replace(3))
	assert.Equal(t, Present(3), y)

	z := Absent[int]()
	assert.Equal(t, Absent[int](), z.Replace(7))
	assert.Equal(t, Present(7), z)
}

func TestInsert(t *testing.T) {
	for _, start := range []Value[int]{Present(1), Null[int](), Absent[int]()} {
		slot := start
		p := slot.Insert(10)
		assert.Equal(t, 10, *p)
		*p = 11
		assert.Equal(t, Present(11), slot)
	}
}

func TestGetOrInsert(t *testing.T) {
	x := Present(1)
	assert.Equal(t, 1, *x.GetOrInsert(5))
	assert.Equal(t, Present(1), x)

	y := Null[int]()
	p := y.GetOrInsert(5)
	*p = 6
	assert.Equal(t, Present(6), y)

	calls := 0
	z := Absent[int]()
	assert.Equal(t, 9, *z.GetOrInsertWith(func() int { calls++; return 9 }))
	assert.Equal(t, 9, *z.GetOrInsertWith(func() int { calls++; return 10 }))
	assert.Equal(t, 1, calls)

	var w Value[[]string]
	s := w.GetOrInsertZero()
	*s = append(*s, "a")
	assert.Equal(t, Present([]string{"a"}), w)
}

func TestPointerConversions(t *testing.T) {
	n := 3
	assert.Equal(t, Present(3), FromPtr(&n))
	assert.Equal(t, Absent[int](), FromPtr[int](nil))

	assert.Equal(t, 3, *Present(3).Ptr())
	assert.Nil(t, Null[int]().Ptr())
	assert.Nil(t, Absent[int]().Ptr())

	assert.Equal(t, Present("a"), FromOK("a", true))
	assert.Equal(t, Absent[string](), FromOK("a", false))
}

func TestNestedOptionalRoundTrip(t *testing.T) {
	for _, x := range []Value[int]{Present(5), Null[int](), Absent[int]()} {
		t.Run(x.State().String(), func(t *testing.T) {
			assert.Equal(t, x, FromPtrPtr(x.PtrPtr()))
		})
	}

	var inner *int
	assert.Equal(t, Null[int](), FromPtrPtr(&inner))
	assert.Equal(t, Absent[int](), FromPtrPtr[int](nil))

	pp := Present(5).PtrPtr()
	require.NotNil(t, pp)
	require.NotNil(t, *pp)
	assert.Equal(t, 5, **pp)
}

func TestAsPtrAndDeref(t *testing.T) {
	v := Present(1)
	p := AsPtr(&v)
	*p.Unwrap() = 2
	assert.Equal(t, Present(2), v)

	n := Null[int]()
	assert.Equal(t, Null[*int](), AsPtr(&n))

	assert.Equal(t, Present(2), Deref(Present(v.Ptr())))
	assert.Equal(t, Null[int](), Deref(Present[*int](nil)))
	assert.Equal(t, Absent[int](), Deref(Absent[*int]()))

	a := Absent[int]()
	assert.Equal(t, Absent[*int](), AsPtr(&a))
}

func TestAsSlice(t *testing.T) {
	assert.Equal(t, []int{1}, Present(1).AsSlice())
	assert.Nil(t, Null[int]().AsSlice())
	assert.Nil(t, Absent[int]().AsSlice())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Present(1), Present(1)))
	assert.False(t, Equal(Present(1), Present(2)))
	assert.True(t, Equal(Null[int](), Null[int]()))
	assert.False(t, Equal(Null[int](), Absent[int]()))

	same := func(a int, b string) bool { return strconv.Itoa(a) == b }
	assert.True(t, EqualFunc(Present(1), Present("1"), same))
	assert.False(t, EqualFunc(Present(1), Null[string](), same))
	assert.True(t, EqualFunc(Absent[int](), Absent[string](), same))
}

func TestStringer(t *testing.T) {
	assert.Equal(t, "hello", fmt.Sprint(Present("hello")))
	assert.Equal(t, "null", fmt.Sprint(Null[string]()))
	assert.Equal(t, "(absent)", fmt.Sprint(Absent[string]()))
}
