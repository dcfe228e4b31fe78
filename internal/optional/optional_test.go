// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package optional

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	t.Parallel()

	some := Some(7)
	require.True(t, some.IsPresent())
	require.Equal(t, 7, some.Value())
	require.Equal(t, 7, some.ValueOr(3))

	none := None[int]()
	require.False(t, none.IsPresent())
	require.Equal(t, 0, none.Value())
	require.Equal(t, 3, none.ValueOr(3))
}
