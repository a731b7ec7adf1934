package topic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		err   error
	}{
		{"simple", "sensors/temp", nil},
		{"system", "$SYS/uptime", nil},
		{"empty", "", ErrEmptyTopic},
		{"too long", strings.Repeat("a", MaxLen+1), ErrTopicTooLong},
		{"single wildcard", "a/+/b", ErrWildcardInName},
		{"multi wildcard", "a/#", ErrWildcardInName},
		{"null", "a\x00b", ErrNullCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.topic)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestValidateFilter(t *testing.T) {
	tests := []struct {
		filter string
		err    error
	}{
		{"a/b", nil},
		{"#", nil},
		{"+", nil},
		{"a/+/c/#", nil},
		{"", ErrEmptyTopic},
		{"a/#/c", ErrInvalidMultiWildcard},
		{"a/b#", ErrInvalidMultiWildcard},
		{"a/b+", ErrInvalidSingleWildcard},
		{"a/\x00", ErrNullCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			err := ValidateFilter(tt.filter)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		filter, name string
		want         bool
	}{
		{"a/b", "a/b", true},
		{"a/+", "a/b", true},
		{"a/+", "a/b/c", false},
		{"a/#", "a", true},
		{"a/#", "a/b/c", true},
		{"#", "$SYS/x", false},
		{"+/x", "$SYS/x", false},
		{"$SYS/#", "$SYS/x", true},
		{"a/b", "a/c", false},
		{"", "a", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.filter, tt.name), "%s vs %s", tt.filter, tt.name)
	}
}

func TestIsShortName(t *testing.T) {
	assert.True(t, IsShortName("ab"))
	assert.False(t, IsShortName("a"))
	assert.False(t, IsShortName("abc"))
	assert.False(t, IsShortName("a#"))
	assert.False(t, IsShortName("++"))
}
