package lex_test

import (
	"testing"

	"github.com/lestrrat-go/dax/internal/lex"
	"github.com/stretchr/testify/require"
)

func TestSimpleFloat(t *testing.T) {
	v, rest, err := lex.SimpleFloat("12.5ms")
	require.NoError(t, err)
	require.Equal(t, 12.5, v)
	require.Equal(t, "ms", rest)

	_, _, err = lex.SimpleFloat("12.")
	require.ErrorIs(t, err, lex.ErrSyntax, "a bare trailing dot is an error")

	_, _, err = lex.SimpleFloat(".5")
	require.ErrorIs(t, err, lex.ErrSyntax)

	_, _, err = lex.SimpleFloat("-1")
	require.ErrorIs(t, err, lex.ErrSyntax)
}

func TestFloat(t *testing.T) {
	inputs := map[string]struct {
		value float64
		rest  string
	}{
		"10":      {10, ""},
		"-1.5e3x": {-1500, "x"},
		".5,":     {0.5, ","},
		"2em":     {2, "em"},
		"+3E-1":   {0.3, ""},
	}
	for input, expected := range inputs {
		v, rest, err := lex.Float(input)
		require.NoError(t, err, "Float(%q)", input)
		require.InDelta(t, expected.value, v, 1e-9, "Float(%q)", input)
		require.Equal(t, expected.rest, rest, "Float(%q)", input)
	}

	_, _, err := lex.Float("-")
	require.Error(t, err)
}

func TestFloats(t *testing.T) {
	list, err := lex.Floats(" 1,2 3 , 4.5e1 ")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 45}, list)

	list, err = lex.Floats("")
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = lex.Floats("1,2,")
	require.Error(t, err)

	_, err = lex.Floats("1 x")
	require.Error(t, err)
}
