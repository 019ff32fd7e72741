package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/shopspring/decimal"

	"github.com/ticklab/backsim/common"
	"github.com/ticklab/backsim/eventtypes/tick"
	"github.com/ticklab/backsim/log"
)

// FromMap validates an inline symbol to prices map. Symbols are
// upper-cased and every price must be positive
func FromMap(inline map[string][]float64) (map[string][]decimal.Decimal, error) {
	if len(inline) == 0 {
		return nil, ErrNoData
	}
	out := make(map[string][]decimal.Decimal, len(inline))
	for symbol, prices := range inline {
		key := strings.ToUpper(strings.TrimSpace(symbol))
		if key == "" {
			return nil, common.ErrUnsetSymbol
		}
		if _, ok := out[key]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateSymbol, key)
		}
		if len(prices) == 0 {
			return nil, fmt.Errorf("%w: %v has no prices", ErrNoData, key)
		}
		series := make([]decimal.Decimal, len(prices))
		for i := range prices {
			if prices[i] <= 0 {
				return nil, fmt.Errorf("%w: %v index %d: %v", ErrPriceInvalid, key, i, prices[i])
			}
			series[i] = decimal.NewFromFloat(prices[i])
		}
		out[key] = series
	}
	return out, nil
}

// FromCSVFile loads one CSV file. A symbol column makes the file
// multi-symbol; without one every row belongs to the symbol named by the
// file itself. The price column is close, falling back to price
func FromCSVFile(path string) (map[string][]decimal.Decimal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf(log.Data, "could not close %v: %v", path, err)
		}
	}()
	stem := strings.ToUpper(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	return parseCSV(csv.NewReader(f), stem, path)
}

func parseCSV(r *csv.Reader, fallbackSymbol, name string) (map[string][]decimal.Decimal, error) {
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrNoData, name)
	}
	if err != nil {
		return nil, err
	}

	symbolCol, closeCol, priceCol := -1, -1, -1
	for i := range header {
		switch strings.ToLower(strings.TrimSpace(header[i])) {
		case "symbol":
			symbolCol = i
		case "close":
			closeCol = i
		case "price":
			priceCol = i
		}
	}
	if closeCol != -1 {
		priceCol = closeCol
	}
	if priceCol == -1 {
		return nil, fmt.Errorf("%w: %v has columns %v", ErrPriceColumnMissing, name, header)
	}

	out := make(map[string][]decimal.Decimal)
	for row := 2; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		symbol := fallbackSymbol
		if symbolCol != -1 {
			symbol = strings.ToUpper(strings.TrimSpace(record[symbolCol]))
		}
		if symbol == "" {
			return nil, fmt.Errorf("%w: %v row %d", common.ErrUnsetSymbol, name, row)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[priceCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: %v row %d: %q", ErrPriceInvalid, name, row, record[priceCol])
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %v row %d: %v", ErrPriceInvalid, name, row, price)
		}
		out[symbol] = append(out[symbol], price)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoData, name)
	}
	return out, nil
}

// FromCSVDir loads every .csv file in the directory. Symbols may not
// repeat across files
func FromCSVDir(dir string) (map[string][]decimal.Decimal, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]decimal.Decimal)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		series, err := FromCSVFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for symbol, prices := range series {
			if _, ok := out[symbol]; ok {
				return nil, fmt.Errorf("%w: %v in %v", ErrDuplicateSymbol, symbol, entry.Name())
			}
			out[symbol] = prices
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no csv files in %v", ErrNoData, dir)
	}
	return out, nil
}

// FromJSONFile loads a JSON object of symbol to price-array pairs
func FromJSONFile(path string) (map[string][]decimal.Decimal, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]decimal.Decimal)
	err = jsonparser.ObjectEach(contents, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		symbol := strings.ToUpper(strings.TrimSpace(string(key)))
		if symbol == "" {
			return common.ErrUnsetSymbol
		}
		if _, ok := out[symbol]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateSymbol, symbol)
		}
		if dataType != jsonparser.Array {
			return fmt.Errorf("%w: %v is not an array of prices", ErrPriceInvalid, symbol)
		}
		var series []decimal.Decimal
		var parseErr error
		if _, err := jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, _ error) {
			if parseErr != nil {
				return
			}
			if itemType != jsonparser.Number {
				parseErr = fmt.Errorf("%w: %v element %d is not a number", ErrPriceInvalid, symbol, len(series))
				return
			}
			price, err := decimal.NewFromString(string(item))
			if err != nil {
				parseErr = fmt.Errorf("%w: %v element %d: %q", ErrPriceInvalid, symbol, len(series), item)
				return
			}
			if price.LessThanOrEqual(decimal.Zero) {
				parseErr = fmt.Errorf("%w: %v element %d: %v", ErrPriceInvalid, symbol, len(series), price)
				return
			}
			series = append(series, price)
		}); err != nil {
			return err
		}
		if parseErr != nil {
			return parseErr
		}
		if len(series) == 0 {
			return fmt.Errorf("%w: %v has no prices", ErrNoData, symbol)
		}
		out[symbol] = series
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoData, path)
	}
	return out, nil
}

// Interleave flattens per-symbol series into the run's tick stream. Ticks
// are ordered index by index across symbols in sorted symbol order, with
// globally sequential timestamps, so every symbol's i-th price precedes
// any symbol's i+1-th regardless of how the data was loaded
func Interleave(series map[string][]decimal.Decimal) ([]*tick.Tick, error) {
	symbols := make([]string, 0, len(series))
	maxLen := 0
	for symbol, prices := range series {
		symbols = append(symbols, symbol)
		if len(prices) > maxLen {
			maxLen = len(prices)
		}
	}
	sort.Strings(symbols)

	var ticks []*tick.Tick
	var timestamp int64
	for i := 0; i < maxLen; i++ {
		for _, symbol := range symbols {
			prices := series[symbol]
			if i >= len(prices) {
				continue
			}
			tk, err := tick.New(timestamp, symbol, prices[i])
			if err != nil {
				return nil, err
			}
			ticks = append(ticks, tk)
			timestamp++
		}
	}
	log.Debugf(log.Data, "interleaved %d ticks across %d symbols", len(ticks), len(symbols))
	return ticks, nil
}
