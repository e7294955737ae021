// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/momeni/bikeshare/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationText(t *testing.T) {
	for s, d := range map[string]time.Duration{
		"24h":   24 * time.Hour,
		"1h30m": 90 * time.Minute,
		"10m":   10 * time.Minute,
		"1m30s": 90 * time.Second,
		"0s":    0,
	} {
		b, err := settings.Duration(d).MarshalText()
		require.NoError(t, err)
		assert.Equal(t, s, string(b))

		var parsed settings.Duration
		require.NoError(t, parsed.UnmarshalText([]byte(s)))
		assert.Equal(t, d, parsed.Std())
	}
	var d settings.Duration
	assert.Error(t, d.UnmarshalText([]byte("one day")))
}

func TestVerifyRange(t *testing.T) {
	lo, hi := 10, 20
	v := 25
	p := &v
	err := settings.VerifyRange("x", &p, &lo, &hi)
	require.NotNil(t, err)
	assert.Equal(t, 20, *p, "clamped to maximum")
	assert.Equal(t, 25, *err.Value)
	assert.EqualError(t, err, "x: 25 is greater than maximum")

	v = 5
	p = &v
	err = settings.VerifyRange("x", &p, &lo, &hi)
	require.NotNil(t, err)
	assert.True(t, err.LessThanMin)
	assert.Equal(t, 10, *p)

	v = 15
	p = &v
	assert.Nil(t, settings.VerifyRange("x", &p, &lo, &hi))
	assert.Nil(t, settings.VerifyRange("x", &p, nil, nil))

	p = nil
	assert.Nil(t, settings.VerifyRange("x", &p, &lo, &hi))
	assert.Nil(t, p)

	err = settings.VerifyRange("x", &p, &hi, &lo)
	require.NotNil(t, err)
	assert.True(t, err.InvalidRange)
}

func TestNil2Default(t *testing.T) {
	var b *bool
	settings.Nil2Zero(&b)
	require.NotNil(t, b)
	assert.False(t, *b)

	var s *string
	settings.Nil2Default(&s, "text")
	require.NotNil(t, s)
	assert.Equal(t, "text", *s)
	settings.Nil2Default(&s, "json")
	assert.Equal(t, "text", *s, "non-nil values are kept")
}
