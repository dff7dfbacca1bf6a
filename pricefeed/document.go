package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/advisor"
)

// Document reads prices from a JSON document, a local file or an http(s) URL.
//
// The JSONPath selects either an object mapping symbols to prices:
//
//	{"GILT10Y": 102.5, "HDFCCORP": "22.15"}
//
// or a list of entries:
//
//	[{"symbol": "GILT10Y", "price": 102.5}]
type Document struct {
	source string
	path   string
	client *http.Client
}

// NewDocument returns a feed reading source. An empty path selects the
// document root.
func NewDocument(source, path string) *Document {
	if path == "" {
		path = "$"
	}
	return &Document{source: source, path: path, client: http.DefaultClient}
}

func (d *Document) Prices(ctx context.Context) (map[advisor.Symbol]advisor.Money, error) {
	data, err := d.read(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(data, d.path)
}

func (d *Document) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(d.source, "http://") && !strings.HasPrefix(d.source, "https://") {
		return os.ReadFile(d.source)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Parse extracts prices from a JSON document. Entries that cannot be read are
// reported together, the others are still returned.
func Parse(data []byte, path string) (map[advisor.Symbol]advisor.Money, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("invalid price document: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}

	prices := make(map[advisor.Symbol]advisor.Money)
	var errs error
	add := func(sym string, price any) {
		s, err := advisor.ParseSymbol(sym)
		if err != nil {
			errs = errors.Join(errs, err)
			return
		}
		p, err := readPrice(price)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", s, err))
			return
		}
		prices[s] = p
	}

	switch v := jval.(type) {
	case map[string]any:
		for sym, price := range v {
			add(sym, price)
		}
	case []any:
		for i, e := range v {
			entry, ok := e.(map[string]any)
			if !ok {
				errs = errors.Join(errs, fmt.Errorf("entry %d is not an object", i))
				continue
			}
			sym, _ := entry["symbol"].(string)
			add(sym, entry["price"])
		}
	default:
		return nil, fmt.Errorf("%q selects neither an object nor a list", path)
	}
	return prices, errs
}

// readPrice accepts a JSON number or a numeric string, possibly with a comma
// as decimal separator.
func readPrice(v any) (advisor.Money, error) {
	var f float64
	switch p := v.(type) {
	case float64:
		f = p
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(p), ",", ".")
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return advisor.Money{}, fmt.Errorf("invalid price %q", p)
		}
	default:
		return advisor.Money{}, fmt.Errorf("invalid price %v", v)
	}
	if f <= 0 {
		return advisor.Money{}, fmt.Errorf("price must be positive, got %v", f)
	}
	return advisor.M(f), nil
}
