package model

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"
	"slices"

	"golang.org/x/crypto/sha3"
)

// ScanPoint is one log-likelihood value at one scan parameter for one mass
// range. It has no identity beyond its coordinates.
type ScanPoint struct {
	Range MassRange `json:"range"`
	Phi   float64   `json:"phi"`
	LogL  float64   `json:"logl"`
}

// ResultSet maps mass range -> (scan parameter -> log-likelihood).
//
// Mass ranges are kept in insertion order of their first occurrence. A range
// exists only after a value was added for it, so every range has at least one
// entry. The zero value is not usable; call NewResultSet.
type ResultSet struct {
	order   []MassRange
	entries map[MassRange]map[float64]float64
}

// NewResultSet creates an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{
		order:   make([]MassRange, 0),
		entries: make(map[MassRange]map[float64]float64),
	}
}

// Add records a point, creating the mass range if absent. A later point for
// the same (range, phi) pair replaces the earlier one.
func (s *ResultSet) Add(p ScanPoint) {
	byPhi, ok := s.entries[p.Range]
	if !ok {
		byPhi = make(map[float64]float64)
		s.entries[p.Range] = byPhi
		s.order = append(s.order, p.Range)
	}
	byPhi[p.Phi] = p.LogL
}

// AddAll records every point in order.
func (s *ResultSet) AddAll(points []ScanPoint) {
	for _, p := range points {
		s.Add(p)
	}
}

// Ranges returns the mass ranges in insertion order.
func (s *ResultSet) Ranges() []MassRange {
	return slices.Clone(s.order)
}

// Len returns the number of mass ranges.
func (s *ResultSet) Len() int {
	return len(s.order)
}

// PointCount returns the number of (range, phi) entries.
func (s *ResultSet) PointCount() int {
	n := 0
	for _, byPhi := range s.entries {
		n += len(byPhi)
	}
	return n
}

// Get returns the log-likelihood stored for (r, phi).
func (s *ResultSet) Get(r MassRange, phi float64) (float64, bool) {
	v, ok := s.entries[r][phi]
	return v, ok
}

// Entries returns the points of one mass range sorted by phi ascending.
// It returns nil for an unknown range.
func (s *ResultSet) Entries(r MassRange) []ScanPoint {
	byPhi, ok := s.entries[r]
	if !ok {
		return nil
	}

	phis := make([]float64, 0, len(byPhi))
	for phi := range byPhi {
		phis = append(phis, phi)
	}
	slices.Sort(phis)

	points := make([]ScanPoint, len(phis))
	for i, phi := range phis {
		points[i] = ScanPoint{Range: r, Phi: phi, LogL: byPhi[phi]}
	}
	return points
}

// Points returns all points, ranges in insertion order and phi ascending
// within each range.
func (s *ResultSet) Points() []ScanPoint {
	points := make([]ScanPoint, 0, s.PointCount())
	for _, r := range s.order {
		points = append(points, s.Entries(r)...)
	}
	return points
}

// Equal reports whether both sets hold the same ranges, in the same order,
// with the same values.
func (s *ResultSet) Equal(other *ResultSet) bool {
	if s == nil || other == nil {
		return s == other
	}
	if !slices.Equal(s.order, other.order) {
		return false
	}
	for r, byPhi := range s.entries {
		otherByPhi := other.entries[r]
		if len(byPhi) != len(otherByPhi) {
			return false
		}
		for phi, v := range byPhi {
			ov, ok := otherByPhi[phi]
			if !ok || math.Float64bits(ov) != math.Float64bits(v) {
				return false
			}
		}
	}
	return true
}

// Digest returns the hex SHA3-256 of the canonical encoding of the set:
// ranges in insertion order, phi ascending, IEEE-754 bits big endian.
func (s *ResultSet) Digest() string {
	h := sha3.New256()
	var buf [8]byte
	put := func(v float64) {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	for _, r := range s.order {
		put(r.Low)
		put(r.High)
		entries := s.Entries(r)
		binary.BigEndian.PutUint64(buf[:], uint64(len(entries)))
		_, _ = h.Write(buf[:])
		for _, p := range entries {
			put(p.Phi)
			put(p.LogL)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// rangeEntries is the JSON form of one mass range.
type rangeEntries struct {
	Range  MassRange  `json:"range"`
	Points []phiEntry `json:"points"`
}

type phiEntry struct {
	Phi  float64 `json:"phi"`
	LogL float64 `json:"logl"`
}

// MarshalJSON encodes the set as an ordered list of ranges.
func (s *ResultSet) MarshalJSON() ([]byte, error) {
	out := make([]rangeEntries, 0, len(s.order))
	for _, r := range s.order {
		entries := s.Entries(r)
		re := rangeEntries{Range: r, Points: make([]phiEntry, len(entries))}
		for i, p := range entries {
			re.Points[i] = phiEntry{Phi: p.Phi, LogL: p.LogL}
		}
		out = append(out, re)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *ResultSet) UnmarshalJSON(data []byte) error {
	var in []rangeEntries
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*s = *NewResultSet()
	for _, re := range in {
		for _, p := range re.Points {
			s.Add(ScanPoint{Range: re.Range, Phi: p.Phi, LogL: p.LogL})
		}
	}
	return nil
}
