package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekFlags(t *testing.T) {
	got, err := parseWeekFlags([]string{"3=Fractions, Decimals", "1=Whole numbers", "3=Ratios"})
	require.NoError(t, err)
	assert.Equal(t, map[int][]string{
		1: {"Whole numbers"},
		3: {"Fractions", "Decimals", "Ratios"},
	}, got)

	got, err = parseWeekFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseWeekFlags_Invalid(t *testing.T) {
	for _, flag := range []string{"Fractions", "zero=Sets", "0=Sets"} {
		_, err := parseWeekFlags([]string{flag})
		assert.Error(t, err, flag)
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short", 10))
	assert.Equal(t, "abc …", preview("abcdef", 3))
}
