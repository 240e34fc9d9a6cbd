package tristatepg

import (
	"testing"

	"github.com/jackc/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansive/tristate/pkg/tristate"
)

func TestStatusMapping(t *testing.T) {
	pairs := []struct {
		status pgtype.Status
		state  tristate.State
	}{
		{pgtype.Undefined, tristate.StateAbsent},
		{pgtype.Null, tristate.StateNull},
		{pgtype.Present, tristate.StatePresent},
	}
	for _, p := range pairs {
		assert.Equal(t, p.state, FromStatus(p.status))
		assert.Equal(t, p.status, ToStatus(p.state))
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, v := range []tristate.Value[string]{
		tristate.Present("abc"),
		tristate.Present(""),
		tristate.Null[string](),
		tristate.Absent[string](),
	} {
		t.Run(v.State().String(), func(t *testing.T) {
			assert.Equal(t, v, FromText(Text(v)))
		})
	}
	assert.Equal(t, pgtype.Text{String: "abc", Status: pgtype.Present}, Text(tristate.Present("abc")))
	assert.Equal(t, pgtype.Text{Status: pgtype.Null}, Text(tristate.Null[string]()))
}

func TestScalarBridges(t *testing.T) {
	assert.Equal(t, tristate.Present[int64](9), FromInt8(Int8(tristate.Present[int64](9))))
	assert.Equal(t, tristate.Null[int64](), FromInt8(pgtype.Int8{Int: 5, Status: pgtype.Null}))
	assert.Equal(t, tristate.Present(false), FromBool(Bool(tristate.Present(false))))
	assert.Equal(t, tristate.Absent[bool](), FromBool(pgtype.Bool{}))
	assert.Equal(t, tristate.Present(1.5), FromFloat8(Float8(tristate.Present(1.5))))
}

func TestJSONB(t *testing.T) {
	type doc struct {
		Name string `json:"name"`
	}

	j, err := JSONB(tristate.Present(doc{Name: "x"}))
	require.NoError(t, err)
	assert.Equal(t, pgtype.Present, j.Status)
	assert.JSONEq(t, `{"name":"x"}`, string(j.Bytes))

	back, err := FromJSONB[doc](j)
	require.NoError(t, err)
	assert.Equal(t, tristate.Present(doc{Name: "x"}), back)

	j, err = JSONB(tristate.Null[doc]())
	require.NoError(t, err)
	assert.Equal(t, pgtype.JSONB{Status: pgtype.Null}, j)

	back, err = FromJSONB[doc](pgtype.JSONB{Bytes: []byte("null"), Status: pgtype.Present})
	require.NoError(t, err)
	assert.True(t, back.IsNull())

	back, err = FromJSONB[doc](pgtype.JSONB{})
	require.NoError(t, err)
	assert.True(t, back.IsAbsent())

	_, err = FromJSONB[doc](pgtype.JSONB{Bytes: []byte("{"), Status: pgtype.Present})
	assert.Error(t, err)
}

func TestAssign(t *testing.T) {
	v, err := Assign[string](&pgtype.Text{String: "hi", Status: pgtype.Present})
	require.NoError(t, err)
	assert.Equal(t, tristate.Present("hi"), v)

	v, err = Assign[string](&pgtype.Text{Status: pgtype.Null})
	require.NoError(t, err)
	assert.Equal(t, tristate.Null[string](), v)

	v, err = Assign[string](&pgtype.Text{})
	require.NoError(t, err)
	assert.Equal(t, tristate.Absent[string](), v)

	n, err := Assign[int64](&pgtype.Int8{Int: 7, Status: pgtype.Present})
	require.NoError(t, err)
	assert.Equal(t, tristate.Present[int64](7), n)
}

func TestSet(t *testing.T) {
	var dst pgtype.Text
	require.NoError(t, Set(&dst, tristate.Present("a")))
	assert.Equal(t, pgtype.Text{String: "a", Status: pgtype.Present}, dst)

	require.NoError(t, Set(&dst, tristate.Null[string]()))
	assert.Equal(t, pgtype.Null, dst.Status)

	var untouched pgtype.Int8
	require.NoError(t, Set(&untouched, tristate.Absent[int64]()))
	assert.Equal(t, pgtype.Undefined, untouched.Status)
}
