// Package workload describes how a month of non-heartbeat tasks splits
// across task types.
package workload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Tolerance is how far the share total may drift from 1.0 before the
// distribution is rescaled.
const Tolerance = 0.01

// ErrInvalidDistribution is matched by InvalidDistributionError.
var ErrInvalidDistribution = errors.New("invalid distribution")

// ErrMalformedJSON is matched by an InvalidDistributionError whose input
// could not be decoded as JSON at all.
var ErrMalformedJSON = errors.New("malformed JSON")

const reasonMalformed = "malformed JSON"

// InvalidDistributionError reports a distribution that could not be parsed
// or violates the share constraints.
type InvalidDistributionError struct {
	Reason string
	Err    error
}

func (e *InvalidDistributionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid distribution: %s: %v", e.Reason, e.Err)
	}
	return "invalid distribution: " + e.Reason
}

func (e *InvalidDistributionError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrInvalidDistribution, and ErrMalformedJSON for
// decoder failures.
func (e *InvalidDistributionError) Is(target error) bool {
	return target == ErrInvalidDistribution ||
		(target == ErrMalformedJSON && e.Reason == reasonMalformed)
}

// Share is the fraction of total tasks classified as one task type.
type Share struct {
	TaskType string  `json:"task_type" yaml:"task_type"`
	Share    float64 `json:"share" yaml:"share"`
}

// Distribution is an ordered set of task-type shares. The order is kept so
// reports render deterministically; it has no effect on totals.
type Distribution struct {
	shares []Share
	index  map[string]int
}

// DefaultShares is the reference production mix.
var DefaultShares = []Share{
	{TaskType: "heartbeat", Share: 0.40},
	{TaskType: "simple_data", Share: 0.10},
	{TaskType: "chat", Share: 0.20},
	{TaskType: "community", Share: 0.15},
	{TaskType: "editorial", Share: 0.10},
	{TaskType: "strategic", Share: 0.05},
}

// Default returns the reference distribution.
func Default() Distribution {
	d, _ := New(DefaultShares)
	return d
}

// New builds a Distribution from shares in the given order. Task types must
// be unique and non-empty; shares must be finite and non-negative.
func New(shares []Share) (Distribution, error) {
	d := Distribution{
		shares: make([]Share, 0, len(shares)),
		index:  make(map[string]int, len(shares)),
	}
	for _, s := range shares {
		if s.TaskType == "" {
			return Distribution{}, &InvalidDistributionError{Reason: "task type cannot be empty"}
		}
		if math.IsNaN(s.Share) || math.IsInf(s.Share, 0) {
			return Distribution{}, &InvalidDistributionError{Reason: fmt.Sprintf("share for %s is not a finite number", s.TaskType)}
		}
		if s.Share < 0 {
			return Distribution{}, &InvalidDistributionError{Reason: fmt.Sprintf("share for %s cannot be negative (got %g)", s.TaskType, s.Share)}
		}
		if _, dup := d.index[s.TaskType]; dup {
			return Distribution{}, &InvalidDistributionError{Reason: fmt.Sprintf("task type %s listed more than once", s.TaskType)}
		}
		d.index[s.TaskType] = len(d.shares)
		d.shares = append(d.shares, s)
	}
	return d, nil
}

// ParseJSON parses a JSON object mapping task type to share, keeping the
// key order of the document. A repeated key keeps its first position and
// takes the last value.
func ParseJSON(data string) (Distribution, error) {
	dec := json.NewDecoder(strings.NewReader(data))

	invalid := func(reason string, err error) (Distribution, error) {
		return Distribution{}, &InvalidDistributionError{Reason: reason, Err: err}
	}

	tok, err := dec.Token()
	if err != nil {
		return invalid(reasonMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return invalid("expected a JSON object of task type to share", nil)
	}

	var shares []Share
	pos := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return invalid(reasonMalformed, err)
		}
		key, ok := tok.(string)
		if !ok {
			return invalid(reasonMalformed, fmt.Errorf("unexpected token %v", tok))
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return invalid(reasonMalformed, err)
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
			return invalid(fmt.Sprintf("share for %s must be a number, got %s", key, raw), nil)
		}
		var value float64
		if err := json.Unmarshal(raw, &value); err != nil {
			return invalid(fmt.Sprintf("share for %s is out of range", key), err)
		}

		if i, seen := pos[key]; seen {
			shares[i].Share = value
			continue
		}
		pos[key] = len(shares)
		shares = append(shares, Share{TaskType: key, Share: value})
	}

	if _, err := dec.Token(); err != nil {
		return invalid(reasonMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return invalid(reasonMalformed, errors.New("unexpected data after object"))
	}

	return New(shares)
}

// Shares returns a copy of the shares in order.
func (d Distribution) Shares() []Share {
	out := make([]Share, len(d.shares))
	copy(out, d.shares)
	return out
}

// TaskTypes returns the task type names in order.
func (d Distribution) TaskTypes() []string {
	out := make([]string, len(d.shares))
	for i, s := range d.shares {
		out[i] = s.TaskType
	}
	return out
}

// Share returns the share for taskType.
func (d Distribution) Share(taskType string) (float64, bool) {
	i, ok := d.index[taskType]
	if !ok {
		return 0, false
	}
	return d.shares[i].Share, true
}

// Len returns the number of task types.
func (d Distribution) Len() int {
	return len(d.shares)
}

// Total returns the sum of all shares.
func (d Distribution) Total() float64 {
	var total float64
	for _, s := range d.shares {
		total += s.Share
	}
	return total
}

// NeedsNormalization reports whether the total is outside Tolerance of 1.0.
func (d Distribution) NeedsNormalization() bool {
	return math.Abs(d.Total()-1.0) > Tolerance
}

// Normalize rescales the shares to sum to 1.0 when the total is outside
// Tolerance, preserving relative proportions. The returned bool reports
// whether rescaling happened. A distribution with a non-positive total
// cannot be rescaled.
func (d Distribution) Normalize() (Distribution, bool, error) {
	if !d.NeedsNormalization() {
		return d, false, nil
	}
	total := d.Total()
	if total <= 0 {
		return Distribution{}, false, &InvalidDistributionError{Reason: "shares sum to zero and cannot be normalized"}
	}
	scaled := make([]Share, len(d.shares))
	for i, s := range d.shares {
		scaled[i] = Share{TaskType: s.TaskType, Share: s.Share / total}
	}
	out, err := New(scaled)
	if err != nil {
		return Distribution{}, false, err
	}
	return out, true, nil
}

// String renders the distribution as {type: share, ...} in order.
func (d Distribution) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range d.shares {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.TaskType)
		b.WriteString(": ")
		b.WriteString(strconv.FormatFloat(s.Share, 'g', -1, 64))
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the distribution as an ordered list of shares.
func (d Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Shares())
}
