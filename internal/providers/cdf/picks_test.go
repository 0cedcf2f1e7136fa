package cdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPythonLiteralToJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single quotes", `[{'element': 1}]`, `[{"element": 1}]`},
		{"keywords", `{'a': True, 'b': False, 'c': None}`, `{"a": true, "b": false, "c": null}`},
		{"tuple", `[(1, 2)]`, `[[1, 2]]`},
		{"embedded double quote", `['say "hi"']`, `["say \"hi\""]`},
		{"escaped quote", `['it\'s']`, `["it's"]`},
		{"exponent", `[1e5, -2.5]`, `[1e5, -2.5]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pythonLiteralToJSON(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPythonLiteralRejectsUnknownIdentifiers(t *testing.T) {
	_, err := pythonLiteralToJSON(`[{'element': nan}]`)
	assert.ErrorIs(t, err, errBadLiteral)

	_, err = pythonLiteralToJSON(`['unterminated]`)
	assert.ErrorIs(t, err, errBadLiteral)
}

func TestDecodePicksBlankIsEmpty(t *testing.T) {
	picks, err := decodePicks("  ")
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestMapPickRowDefaultsMultiplier(t *testing.T) {
	picks, err := mapPickRow(map[string]any{
		"entry_id":   7.0,
		"gameweek":   3.0,
		"picks_json": `[{"element": 11, "multiplier": 0}, {"element": 12}]`,
	})
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, 0, picks[0].Multiplier, "benched players keep an explicit zero")
	assert.Equal(t, 1, picks[1].Multiplier)
	assert.Equal(t, "player_12", picks[1].PlayerKey())
}

func TestMapPickRowRejectsNonStringColumn(t *testing.T) {
	_, err := mapPickRow(map[string]any{"picks_json": 12.0})
	assert.Error(t, err)
}
