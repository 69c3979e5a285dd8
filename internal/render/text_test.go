package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stationwx/brc/internal/engine"
)

func TestTextRenderFormatsOneFractionalDigit(t *testing.T) {
	records := []engine.Record{
		{Name: []byte("Bulawayo"), Min: 8.9, Mean: 8.9, Max: 8.9, Count: 1},
		{Name: []byte("Hamburg"), Min: 12.0, Mean: 12.5, Max: 13.0, Count: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, (Text{Writer: &buf}).Render(records))

	assert.Equal(t, "Bulawayo=8.9/8.9/8.9\nHamburg=12.0/12.5/13.0\n", buf.String())
}

func TestTextRenderNegativeValues(t *testing.T) {
	records := []engine.Record{
		{Name: []byte("X"), Min: -99.9, Mean: 0.0, Max: 99.9, Count: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, (Text{Writer: &buf}).Render(records))

	assert.Equal(t, "X=-99.9/0.0/99.9\n", buf.String())
}

func TestTextRenderEmptyProducesEmptyOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (Text{Writer: &buf}).Render(nil))
	assert.Empty(t, buf.String())
}
