// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package query builds the Elasticsearch filter query used to select
// transfer ads for a single access point over a time window.
//
// The query is a pure value: building it performs no I/O and never fails.
// Inputs are passed through untouched, so an empty access point name or an
// inverted window produce a query the search service is free to reject or
// answer with zero hits.
package query

import (
	"encoding/json"
)

// Document fields the filter constrains.
const (
	FacilityField   = "ScheddName"
	ProtocolField   = "TransferProtocol"
	RecordTimeField = "RecordTime"
)

// protocols is the fixed allow-list of transfer protocols. It is a literal
// constant rather than configuration.
var protocols = [...]string{"stash", "osdf", "pelican"}

// Protocols returns a copy of the transfer protocol allow-list.
func Protocols() []string {
	out := make([]string, len(protocols))
	copy(out, protocols[:])
	return out
}

// Query is a filter-only search request against Index. Scores are not
// tracked because results are never ranked.
type Query struct {
	Index       string    `json:"-"`
	TrackScores bool      `json:"track_scores"`
	Query       BoolQuery `json:"query"`
}

// BoolQuery combines its filter clauses conjunctively.
type BoolQuery struct {
	Bool struct {
		Filter []Filter `json:"filter"`
	} `json:"bool"`
}

// Filter is a single non-scoring clause of a bool query.
type Filter interface {
	json.Marshaler
	// Kind names the clause type as it appears on the wire ("term", "terms", "range").
	Kind() string
}

// Term matches documents whose Field equals Value exactly.
type Term struct {
	Field string
	Value string
}

func (Term) Kind() string { return "term" }

func (t Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]string{
		"term": {t.Field: t.Value},
	})
}

// Terms matches documents whose Field is any of Values.
type Terms struct {
	Field  string
	Values []string
}

func (Terms) Kind() string { return "terms" }

func (t Terms) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string][]string{
		"terms": {t.Field: t.Values},
	})
}

// Range matches documents whose numeric Field lies in [GTE, LT).
type Range struct {
	Field string
	GTE   int64
	LT    int64
}

func (Range) Kind() string { return "range" }

func (r Range) MarshalJSON() ([]byte, error) {
	type bounds struct {
		GTE int64 `json:"gte"`
		LT  int64 `json:"lt"`
	}
	return json.Marshal(map[string]map[string]bounds{
		"range": {r.Field: {GTE: r.GTE, LT: r.LT}},
	})
}

// Build returns the filter query for transfer ads recorded by the access
// point ap within [start, end), restricted to the allow-listed protocols.
func Build(index, ap string, start, end int64) *Query {
	q := &Query{
		Index:       index,
		TrackScores: false,
	}
	q.Query.Bool.Filter = []Filter{
		Term{Field: FacilityField, Value: ap},
		Terms{Field: ProtocolField, Values: Protocols()},
		Range{Field: RecordTimeField, GTE: start, LT: end},
	}
	return q
}

// Filters returns the clauses of the query's bool filter.
func (q *Query) Filters() []Filter {
	return q.Query.Bool.Filter
}
