// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/bikeshare/pkg/core/model"
)

// MismatchingSemVerError indicates that a configuration file or a
// database schema has a version (second item) which is not supported
// by the supported version of this program (first item).
type MismatchingSemVerError [2]model.SemVer

func (msve *MismatchingSemVerError) Error() string {
	supported, actual := msve[0], msve[1]
	return fmt.Sprintf(
		"v%s is not supported by v%s", actual.String(), supported.String(),
	)
}

// CheckVersion returns nil if the supported version can consume data
// of the actual version and a *MismatchingSemVerError otherwise.
func CheckVersion(supported, actual model.SemVer) error {
	if supported.Supports(actual) {
		return nil
	}
	return &MismatchingSemVerError{supported, actual}
}
