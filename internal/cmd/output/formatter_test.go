package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/internal/cmd/table"
	"github.com/agentstation/locallift/pkg/errors"
)

type sample struct {
	APIKey   string `json:"api_key"`
	Location string `json:"default_location,omitempty"`
	Hidden   string `json:"-"`
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestPrinterFormats(t *testing.T) {
	raw := []map[string]int{{"id": 1}}
	toTable := func(wide bool) table.Data {
		h := "narrow"
		if wide {
			h = "wide"
		}
		return table.Data{Headers: []string{h}, Rows: [][]string{{"row-1"}}}
	}

	tests := []struct {
		format   Format
		contains []string
	}{
		{FormatJSON, []string{`"id": 1`}},
		{FormatYAML, []string{"- id: 1"}},
		{FormatTable, []string{"NARROW", "row-1"}},
		{FormatWide, []string{"WIDE", "row-1"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewPrinterTo(tt.format, &buf).Print(raw, toTable))
			out := buf.String()
			for _, s := range tt.contains {
				if tt.format.IsTable() {
					// header case depends on the table renderer
					out, s = strings.ToUpper(out), strings.ToUpper(s)
				}
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestTableFormatterReflectsStructs(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinterTo(FormatTable, &buf).Print(&sample{APIKey: "abcd****", Location: "Reno", Hidden: "secret"}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Api Key")
	assert.Contains(t, out, "Default Location")
	assert.Contains(t, out, "Reno")
	assert.NotContains(t, out, "secret")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, []string{"a"}))
	assert.Contains(t, buf.String(), `"a"`)
}
