package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "Mario Bros", expected: "mariobros"},
		{input: " Super\tExpert\n", expected: "superexpert"},
		{input: "", expected: ""},
	}

	for _, row := range table {
		require.Equal(t, row.expected, NormalizeName(row.input))
	}
}

func TestCollapseSpace(t *testing.T) {
	require.Equal(t, "Super Expert", CollapseSpace("  Super \n  Expert "))
}
