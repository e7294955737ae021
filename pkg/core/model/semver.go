// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer is a semantic version as major, minor, and patch numbers.
// It versions the database schema and the configuration file format.
type SemVer [3]uint

// ParseSemVer parses s as a dot separated version. Missing minor and
// patch components are taken as zero.
func ParseSemVer(s string) (SemVer, error) {
	var sv SemVer
	err := sv.UnmarshalText([]byte(s))
	return sv, err
}

func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if len(p) > 3 || p[0] == "" {
		return fmt.Errorf("malformed version %q", text)
	}
	var v SemVer
	for i, c := range p {
		n, err := strconv.ParseUint(c, 10, 32)
		if err != nil {
			return fmt.Errorf("version component %q: %w", c, err)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// Major returns the major version number.
func (sv SemVer) Major() uint {
	return sv[0]
}

// Supports reports whether data which is produced according to the
// other version may be consumed by sv. That is, they must have the
// same major version and sv must have at least the minor version
// of other.
func (sv SemVer) Supports(other SemVer) bool {
	return sv[0] == other[0] && sv[1] >= other[1]
}
