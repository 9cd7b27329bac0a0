package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, symbol, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestLoadSymbol(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "600000.SH", `date,open,high,low,close,volume
2023-01-03,10.0,10.5,9.8,10.2,1000000
2023-01-04,10.2,10.8,10.1,10.6,1200000
`)

	loader := NewCSVLoader(dir)
	prices, err := loader.LoadSymbol("600000.SH")
	require.NoError(t, err)
	require.Len(t, prices, 2)

	assert.Equal(t, "600000.SH", prices[0].Symbol)
	assert.Equal(t, time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), prices[0].Date)
	assert.Equal(t, 10.2, prices[0].Close)
	assert.Equal(t, 1200000.0, prices[1].Volume)
}

func TestLoadSymbolNoHeader(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "600000.SH", "2023-01-03,10.0,10.5,9.8,10.2,1000000\n")

	loader := NewCSVLoader(dir)
	prices, err := loader.LoadSymbol("600000.SH")
	require.NoError(t, err)
	assert.Len(t, prices, 1)
}

func TestLoadSymbolMissingFile(t *testing.T) {
	loader := NewCSVLoader(t.TempDir())
	_, err := loader.LoadSymbol("600000.SH")
	assert.Error(t, err)
}

func TestLoadSymbolMalformedRow(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "600000.SH", `date,open,high,low,close,volume
2023-01-03,10.0,10.5,9.8,not-a-number,1000000
`)

	loader := NewCSVLoader(dir)
	_, err := loader.LoadSymbol("600000.SH")
	assert.Error(t, err)
}

func TestLoadSymbolShortRow(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "600000.SH", "2023-01-03,10.0,10.5\n")

	loader := NewCSVLoader(dir)
	_, err := loader.LoadSymbol("600000.SH")
	assert.Error(t, err)
}

func TestLoadPanel(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "600000.SH", `date,open,high,low,close,volume
2023-01-03,10.0,10.5,9.8,10.2,1000000
`)
	writeCSV(t, dir, "000001.SZ", `date,open,high,low,close,volume
2023-01-03,20.0,20.5,19.8,20.2,500000
2023-01-04,20.2,21.0,20.0,20.8,600000
`)

	loader := NewCSVLoader(dir)
	p, err := loader.LoadPanel([]string{"600000.SH", "000001.SZ"})
	require.NoError(t, err)

	assert.Len(t, p.Dates(), 2)
	assert.Equal(t, []string{"600000.SH", "000001.SZ"}, p.Symbols())

	v, ok := p.Close(time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC), "000001.SZ")
	require.True(t, ok)
	assert.Equal(t, 20.8, v)

	vol, ok := p.Value("volume", time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), "600000.SH")
	require.True(t, ok)
	assert.Equal(t, 1000000.0, vol)
}
