package config

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Record is a single item of an object collection.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Choice is one allowed value of a finite choice set.
type Choice struct {
	Value any
	Label string
}

// String returns the label, or the value when no label is set.
func (c Choice) String() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprint(c.Value)
}

// Choices is an ordered finite choice set. An empty set means any value is
// accepted.
type Choices []Choice

// ChoiceList builds a choice set from plain values.
func ChoiceList(values ...any) Choices {
	choices := make(Choices, 0, len(values))
	for _, v := range values {
		choices = append(choices, Choice{Value: v})
	}
	return choices
}

// ChoiceMap builds a keyed choice set. Keys are the stored values and are
// sorted; map values are the labels shown to the user.
func ChoiceMap(m map[string]string) Choices {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	choices := make(Choices, 0, len(keys))
	for _, k := range keys {
		choices = append(choices, Choice{Value: k, Label: m[k]})
	}
	return choices
}

// Contains reports whether v is one of the allowed values.
func (cs Choices) Contains(v any) bool {
	for _, c := range cs {
		if Equal(c.Value, v) {
			return true
		}
	}
	return false
}

// Values returns the allowed values in order.
func (cs Choices) Values() []any {
	values := make([]any, len(cs))
	for i, c := range cs {
		values[i] = c.Value
	}
	return values
}

// String lists the allowed values, comma separated.
func (cs Choices) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprint(c.Value)
	}
	return strings.Join(parts, ", ")
}

// Equal compares two configuration values. Numbers compare by value
// regardless of their Go type, so a declared int matches the float64 that
// JSON decoding produces. Integers compare exactly, without going through
// float64. Everything else uses deep equality.
func Equal(a, b any) bool {
	na, aNum := toNumber(a)
	nb, bNum := toNumber(b)
	if aNum || bNum {
		return aNum && bNum && na.equal(nb)
	}
	return reflect.DeepEqual(a, b)
}

type numberKind int

const (
	signedNumber numberKind = iota
	unsignedNumber
	floatNumber
)

type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func (n number) equal(o number) bool {
	if n.kind > o.kind {
		n, o = o, n
	}
	switch {
	case n.kind == signedNumber && o.kind == signedNumber:
		return n.i == o.i
	case n.kind == unsignedNumber && o.kind == unsignedNumber:
		return n.u == o.u
	case n.kind == signedNumber && o.kind == unsignedNumber:
		return n.i >= 0 && uint64(n.i) == o.u
	case n.kind == floatNumber:
		return n.f == o.f
	}

	// One integer, one float: only an integral float within range can match.
	if o.f != math.Trunc(o.f) {
		return false
	}
	if n.kind == signedNumber {
		if o.f < -(1<<63) || o.f >= 1<<63 {
			return false
		}
		return int64(o.f) == n.i
	}
	if o.f < 0 || o.f >= 1<<64 {
		return false
	}
	return uint64(o.f) == n.u
}

func toNumber(v any) (number, bool) {
	switch n := v.(type) {
	case int:
		return number{kind: signedNumber, i: int64(n)}, true
	case int8:
		return number{kind: signedNumber, i: int64(n)}, true
	case int16:
		return number{kind: signedNumber, i: int64(n)}, true
	case int32:
		return number{kind: signedNumber, i: int64(n)}, true
	case int64:
		return number{kind: signedNumber, i: n}, true
	case uint:
		return number{kind: unsignedNumber, u: uint64(n)}, true
	case uint8:
		return number{kind: unsignedNumber, u: uint64(n)}, true
	case uint16:
		return number{kind: unsignedNumber, u: uint64(n)}, true
	case uint32:
		return number{kind: unsignedNumber, u: uint64(n)}, true
	case uint64:
		return number{kind: unsignedNumber, u: n}, true
	case float32:
		return number{kind: floatNumber, f: float64(n)}, true
	case float64:
		return number{kind: floatNumber, f: n}, true
	}
	return number{}, false
}

// ToRecords converts a decoded or host-supplied value into collection
// records.
func ToRecords(v any) ([]Record, error) {
	switch items := v.(type) {
	case nil:
		return nil, nil
	case []Record:
		out := make([]Record, len(items))
		for i, r := range items {
			out[i] = r.Clone()
		}
		return out, nil
	case []map[string]any:
		out := make([]Record, len(items))
		for i, r := range items {
			out[i] = Record(r).Clone()
		}
		return out, nil
	case []any:
		out := make([]Record, len(items))
		for i, item := range items {
			switch r := item.(type) {
			case Record:
				out[i] = r.Clone()
			case map[string]any:
				out[i] = Record(r).Clone()
			default:
				return nil, fmt.Errorf("item %d is %T, not an object", i, item)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list of objects, got %T", v)
}
