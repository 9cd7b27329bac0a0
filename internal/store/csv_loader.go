package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/contracts"
	"github.com/chenglinzhou/ashare-rotation/internal/panel"
)

const csvDateLayout = "2006-01-02"

// CSVLoader reads per-symbol OHLCV files named <SYMBOL>.csv from a
// directory. Each file has a header row and columns
// date,open,high,low,close,volume.
type CSVLoader struct {
	dir string
}

// NewCSVLoader creates a loader rooted at dir.
func NewCSVLoader(dir string) *CSVLoader {
	return &CSVLoader{dir: dir}
}

// LoadSymbol parses the bars for one symbol, sorted as stored.
func (l *CSVLoader) LoadSymbol(symbol string) ([]*contracts.Price, error) {
	path := filepath.Join(l.dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price file for %s: %w", symbol, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse price file for %s: %w", symbol, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Tolerate files written without a header row.
	if isHeader(records[0]) {
		records = records[1:]
	}

	prices := make([]*contracts.Price, 0, len(records))
	for i, rec := range records {
		bar, err := parseRecord(symbol, rec)
		if err != nil {
			return nil, fmt.Errorf("price file for %s, row %d: %w", symbol, i+1, err)
		}
		prices = append(prices, bar)
	}
	return prices, nil
}

// LoadPanel builds a panel for the given symbols. Missing files are an
// error; sparse dates inside a file are fine, the panel handles them.
func (l *CSVLoader) LoadPanel(symbols []string) (*panel.Panel, error) {
	p := panel.New()
	for _, symbol := range symbols {
		prices, err := l.LoadSymbol(symbol)
		if err != nil {
			return nil, err
		}
		for _, bar := range prices {
			addBar(p, bar)
		}
	}
	return p, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := time.Parse(csvDateLayout, strings.TrimSpace(rec[0]))
	return err != nil
}

func parseRecord(symbol string, rec []string) (*contracts.Price, error) {
	if len(rec) < 6 {
		return nil, fmt.Errorf("expected 6 columns, got %d", len(rec))
	}

	date, err := time.Parse(csvDateLayout, strings.TrimSpace(rec[0]))
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", rec[0], err)
	}

	fields := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q in column %d: %w", rec[i+1], i+2, err)
		}
		fields[i] = v
	}

	return &contracts.Price{
		Symbol: symbol,
		Date:   date,
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}, nil
}
