package engine_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationwx/brc/internal/engine"
	"github.com/stationwx/brc/internal/render"
)

func renderText(t *testing.T, input string, workers int) string {
	t.Helper()
	records, err := engine.Run(context.Background(), []byte(input), engine.Options{Workers: workers})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (render.Text{Writer: &buf}).Render(records))
	return buf.String()
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "hamburg and bulawayo",
			input: "Hamburg;12.0\nHamburg;13.0\nBulawayo;8.9\n",
			want:  "Bulawayo=8.9/8.9/8.9\nHamburg=12.0/12.5/13.0\n",
		},
		{
			name:  "small negative and positive average to zero",
			input: "A;-0.1\nA;0.1\n",
			want:  "A=-0.1/0.0/0.1\n",
		},
		{
			name:  "apostrophe name sorts after its ascii-lower relative",
			input: "St. John's;1.2\nSaint John;1.2\n",
			want:  "Saint John=1.2/1.2/1.2\nSt. John's=1.2/1.2/1.2\n",
		},
		{
			name:  "symmetric extremes average to zero",
			input: "X;99.9\nX;-99.9\n",
			want:  "X=-99.9/0.0/99.9\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, renderText(t, tc.input, 4))
		})
	}
}

func TestWorkerCountInvariance(t *testing.T) {
	input := "Hamburg;12.0\nHamburg;13.0\nBulawayo;8.9\nHamburg;-4.4\nTokyo;22.2\nBulawayo;9.9\n"

	baseline := renderText(t, input, 1)
	for _, w := range []int{1, 2, 4, 8, 16} {
		assert.Equal(t, baseline, renderText(t, input, w), "worker count %d must not change output", w)
	}
}

func TestOutputSortedAndUnique(t *testing.T) {
	input := "Zurich;1.0\nAmsterdam;2.0\nBerlin;3.0\nAmsterdam;4.0\n"

	out := renderText(t, input, 3)
	lines := bytes.Split(bytes.TrimRight([]byte(out), "\n"), []byte("\n"))

	require.Len(t, lines, 3)
	for i := 1; i < len(lines); i++ {
		assert.Less(t, string(lines[i-1]), string(lines[i]))
	}
}

func TestSingleLineFile(t *testing.T) {
	out := renderText(t, "Reykjavik;3.4\n", 4)
	assert.Equal(t, "Reykjavik=3.4/3.4/3.4\n", out)
}

func TestDeterministicAcrossRuns(t *testing.T) {
	input := "Hamburg;12.0\nHamburg;13.0\nBulawayo;8.9\n"
	first := renderText(t, input, 4)
	second := renderText(t, input, 4)
	assert.Equal(t, first, second)
}
