// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected *File
		err      bool
	}{
		{
			name:     "empty",
			input:    "",
			expected: &File{},
		},
		{
			name: "all fields",
			input: `
roots: [/opt/tptp, ./lib]
time_limit: 30s
forbidden_includes: ["Axioms/SET006+0.ax"]
filter_reserved: true
collect_sources: true
log_level: debug
format: json
max_concurrency: 4
options:
  age_weight_ratio: "3"
  saturation_algorithm: discount
`,
			expected: &File{
				Roots:             []string{"/opt/tptp", "./lib"},
				TimeLimit:         30 * time.Second,
				ForbiddenIncludes: []string{"Axioms/SET006+0.ax"},
				FilterReserved:    true,
				CollectSources:    true,
				LogLevel:          "debug",
				Format:            FormatJSON,
				MaxConcurrency:    4,
				Options:           map[string]string{"age_weight_ratio": "3", "saturation_algorithm": "discount"},
			},
		},
		{name: "unknown key", input: "colour: red\n", err: true},
		{name: "unknown format", input: "format: xml\n", err: true},
		{name: "unknown log level", input: "log_level: loud\n", err: true},
		{name: "negative time limit", input: "time_limit: -1s\n", err: true},
		{name: "bad option name", input: "options:\n  Age: \"1\"\n", err: true},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			f, err := Load(strings.NewReader(testCase.input))
			if testCase.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.expected, f)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	o := NewOptions(map[string]string{"a": "1"})
	v, ok := o.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	require.NoError(t, o.Set("b", "2"))
	require.NoError(t, o.Set("a", "3"))
	require.Error(t, o.Set("", "1"))
	require.Error(t, o.Set("Bad-Name", "1"))
	require.Error(t, o.Set("c", ""))
	require.Equal(t, []string{"a", "b"}, o.Names())
	v, _ = o.Get("a")
	require.Equal(t, "3", v)

	var wg sync.WaitGroup
	for x := 0; x < 8; x = x + 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = o.Set("shared", "v")
		}()
	}
	wg.Wait()
	v, ok = o.Get("shared")
	require.True(t, ok)
	require.Equal(t, "v", v)
}
