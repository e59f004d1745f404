package network

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSnapshotSchema(t *testing.T) {
	data, err := EncodeSnapshot(Snapshot{Offset: -0.5, Z: 1200})
	require.NoError(t, err)
	assert.JSONEq(t, `{"offset":-0.5,"z":1200}`, string(data))

	_, err = EncodeSnapshot(Snapshot{Offset: math.NaN()})
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = EncodeSnapshot(Snapshot{Z: math.Inf(1)})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeSnapshot(t *testing.T) {
	s, err := DecodeSnapshot([]byte(`{"offset":1.25,"z":40}`))
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Offset: 1.25, Z: 40}, s)

	for _, in := range []string{`{"offset":1}`, `{"z":1}`, `[]`, `nope`} {
		_, err := DecodeSnapshot([]byte(in))
		assert.ErrorIs(t, err, ErrMalformed, in)
	}
}

func TestEncodeRosterNeverNull(t *testing.T) {
	data, err := EncodeRoster(Roster{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cars":[]}`, string(data))

	data, err = EncodeRoster(Roster{Cars: []CarState{{ID: 3, Offset: 0.1, Z: 99}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cars":[{"id":3,"offset":0.1,"z":99}]}`, string(data))
}

func TestDecodeRoster(t *testing.T) {
	r, err := DecodeRoster([]byte(`{"cars":[{"id":1,"offset":0,"z":10},{"id":7,"offset":-1,"z":20}]}`))
	require.NoError(t, err)
	assert.Equal(t, []CarState{{ID: 1, Offset: 0, Z: 10}, {ID: 7, Offset: -1, Z: 20}}, r.Cars)

	r, err = DecodeRoster([]byte(`{"cars":[]}`))
	require.NoError(t, err)
	assert.Empty(t, r.Cars)
	assert.NotNil(t, r.Cars)
}

func TestDecodeRosterMalformed(t *testing.T) {
	cases := map[string]string{
		"bad json":       `{"cars":`,
		"missing cars":   `{}`,
		"null cars":      `{"cars":null}`,
		"missing id":     `{"cars":[{"offset":0,"z":1}]}`,
		"missing offset": `{"cars":[{"id":1,"z":1}]}`,
		"missing z":      `{"cars":[{"id":1,"offset":0}]}`,
		"duplicate id":   `{"cars":[{"id":1,"offset":0,"z":1},{"id":1,"offset":0,"z":2}]}`,
		"wrong type":     `{"cars":[{"id":"a","offset":0,"z":1}]}`,
		"overflow":       `{"cars":[{"id":1,"offset":1e999,"z":1}]}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRoster([]byte(in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestJoin(t *testing.T) {
	data, err := EncodeJoin(Join{ID: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4}`, string(data))

	j, err := DecodeJoin(data)
	require.NoError(t, err)
	assert.Equal(t, 4, j.ID)

	_, err = DecodeJoin([]byte(`{}`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestClassifyInbound(t *testing.T) {
	kind, err := ClassifyInbound([]byte(`{"cars":[]}`))
	require.NoError(t, err)
	assert.Equal(t, MsgRoster, kind)

	kind, err = ClassifyInbound([]byte(`{"id":2}`))
	require.NoError(t, err)
	assert.Equal(t, MsgJoin, kind)

	_, err = ClassifyInbound([]byte(`{"offset":1}`))
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = ClassifyInbound([]byte(`garbage`))
	assert.ErrorIs(t, err, ErrMalformed)
}
