// Package topic provides MQTT topic name and filter handling for both
// protocol sides of the gateway: validation per MQTT 3.1.1 Section 4.7,
// wildcard matching, and the MQTT-SN short topic form.
package topic

import (
	"strings"
)

const (
	// Separator is the topic level separator.
	Separator = '/'

	// MultiWildcard matches any number of levels (must be last).
	MultiWildcard = '#'

	// SingleWildcard matches exactly one level.
	SingleWildcard = '+'

	// SysPrefix is the prefix for system topics.
	SysPrefix = '$'

	// ShortNameLen is the length of an MQTT-SN short topic name.
	ShortNameLen = 2

	// MaxLen is the longest name or filter a 2-byte length prefix can carry.
	MaxLen = 65535
)

// ValidateName validates a topic name (no wildcards allowed).
func ValidateName(name string) error {
	if len(name) == 0 {
		return ErrEmptyTopic
	}
	if len(name) > MaxLen {
		return ErrTopicTooLong
	}

	for i := 0; i < len(name); i++ {
		switch name[i] {
		case MultiWildcard, SingleWildcard:
			return ErrWildcardInName
		case 0:
			return ErrNullCharacter
		}
	}
	return nil
}

// ValidateFilter validates a topic filter (wildcards allowed).
func ValidateFilter(filter string) error {
	if len(filter) == 0 {
		return ErrEmptyTopic
	}
	if len(filter) > MaxLen {
		return ErrTopicTooLong
	}
	if strings.IndexByte(filter, 0) >= 0 {
		return ErrNullCharacter
	}

	levels := Levels(filter)
	for i, level := range levels {
		if strings.ContainsRune(level, MultiWildcard) {
			// # must be alone in its level and be the last level
			if level != string(MultiWildcard) || i != len(levels)-1 {
				return ErrInvalidMultiWildcard
			}
		}
		if strings.ContainsRune(level, SingleWildcard) && level != string(SingleWildcard) {
			return ErrInvalidSingleWildcard
		}
	}
	return nil
}

// Match reports whether a topic name matches a topic filter.
func Match(filter, name string) bool {
	if len(filter) == 0 || len(name) == 0 {
		return false
	}

	// $-prefixed topics don't match filters starting with a wildcard
	if IsSystem(name) && (filter[0] == MultiWildcard || filter[0] == SingleWildcard) {
		return false
	}

	filterLevels := Levels(filter)
	nameLevels := Levels(name)

	for i, fl := range filterLevels {
		if fl == string(MultiWildcard) {
			return true
		}
		if i >= len(nameLevels) {
			return false
		}
		if fl != string(SingleWildcard) && fl != nameLevels[i] {
			return false
		}
	}
	return len(filterLevels) == len(nameLevels)
}

// Levels splits a topic into its levels.
func Levels(topic string) []string {
	return strings.Split(topic, string(Separator))
}

// HasWildcard reports whether the filter contains a wildcard character.
func HasWildcard(filter string) bool {
	return strings.ContainsAny(filter, string(MultiWildcard)+string(SingleWildcard))
}

// IsShortName reports whether name can travel as an MQTT-SN short topic:
// exactly two bytes and no wildcards.
func IsShortName(name string) bool {
	return len(name) == ShortNameLen && !HasWildcard(name)
}

// IsSystem reports whether the topic starts with $.
func IsSystem(name string) bool {
	return len(name) > 0 && name[0] == SysPrefix
}
