// Package ratefeed validates external exchange-rate snapshots and expands
// them into the all-pairs rate map the graph layer consumes.
package ratefeed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Mx2468/bellman-ford-arbitrage/internal/graph"
)

var (
	// ErrMissingBase indicates a snapshot without a base currency.
	ErrMissingBase = errors.New("ratefeed: snapshot missing base currency")

	// ErrMissingRates indicates a snapshot without a rates object.
	ErrMissingRates = errors.New("ratefeed: snapshot missing rates")

	// ErrEmptyRates indicates a snapshot whose rates object is empty.
	ErrEmptyRates = errors.New("ratefeed: empty rates")
)

var codePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Snapshot is the wire format of a feed response: a base currency and the
// rates quoted against it.
type Snapshot struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Decode parses raw JSON into a Snapshot, rejecting unknown fields and
// non-numeric rates.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("ratefeed: decode snapshot: %w", err)
	}
	return s, nil
}

// Parse validates a snapshot and expands it into every ordered currency pair
// with its cross rate. Currency codes are normalised to upper case; codes
// must be three letters, rates finite and strictly positive, and the base
// must not be quoted against itself.
func Parse(s Snapshot) (map[graph.Pair]float64, error) {
	if s.Base == "" {
		return nil, ErrMissingBase
	}
	base := strings.ToUpper(s.Base)
	if !codePattern.MatchString(base) {
		return nil, fmt.Errorf("ratefeed: invalid base currency code %q", s.Base)
	}
	if s.Rates == nil {
		return nil, ErrMissingRates
	}
	if len(s.Rates) == 0 {
		return nil, ErrEmptyRates
	}

	rates := make(map[string]float64, len(s.Rates))
	for code, rate := range s.Rates {
		if !codePattern.MatchString(code) {
			return nil, fmt.Errorf("ratefeed: invalid currency code %q", code)
		}
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
			return nil, fmt.Errorf("ratefeed: invalid rate %v for %s", rate, strings.ToUpper(code))
		}
		rates[strings.ToUpper(code)] = rate
	}
	if _, ok := rates[base]; ok {
		return nil, fmt.Errorf("ratefeed: base currency %s found among its own rates", base)
	}
	return crossPairs(base, rates), nil
}

// crossPairs computes the rate for every ordered pair across the base and all
// quoted currencies: base->X is the quoted rate, X->base its inverse and
// X->Y the quotient of the two quoted rates.
func crossPairs(base string, rates map[string]float64) map[graph.Pair]float64 {
	currencies := make([]string, 0, len(rates)+1)
	for c := range rates {
		currencies = append(currencies, c)
	}
	currencies = append(currencies, base)

	pairs := make(map[graph.Pair]float64, len(currencies)*(len(currencies)-1))
	for _, from := range currencies {
		for _, to := range currencies {
			switch {
			case from == to:
			case from == base:
				pairs[graph.Pair{From: from, To: to}] = rates[to]
			case to == base:
				pairs[graph.Pair{From: from, To: to}] = 1 / rates[from]
			default:
				pairs[graph.Pair{From: from, To: to}] = rates[to] / rates[from]
			}
		}
	}
	return pairs
}

// NegLogWeights converts multiplicative exchange rates into additive edge
// weights (-log rate), so a trade loop whose rate product exceeds 1 shows up
// as a negative-weight cycle. The graph layer never applies this itself; it
// is the caller's half of the arbitrage contract.
func NegLogWeights(rates map[graph.Pair]float64) map[graph.Pair]float64 {
	out := make(map[graph.Pair]float64, len(rates))
	for p, r := range rates {
		out[p] = -math.Log(r)
	}
	return out
}
