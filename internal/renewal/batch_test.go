// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package renewal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/googleapis/polinerenew/internal/alma"
)

func TestApplyRenewal(t *testing.T) {
	for _, test := range []struct {
		name    string
		doc     string
		renewal Renewal
		want    map[string]any
	}{
		{
			name:    "date only",
			doc:     `{"renewal_date":"2020-01-01Z","other_field":"X"}`,
			renewal: Renewal{Date: "2024-06-01"},
			want: map[string]any{
				"renewal_date": "2024-06-01Z",
				"other_field":  "X",
			},
		},
		{
			name:    "date and period",
			doc:     `{"renewal_date":"2020-01-01Z","other_field":"X"}`,
			renewal: Renewal{Date: "2024-06-01", Period: 90},
			want: map[string]any{
				"renewal_date":   "2024-06-01Z",
				"renewal_period": float64(90),
				"other_field":    "X",
			},
		},
		{
			name:    "existing period kept",
			doc:     `{"renewal_date":"2020-01-01Z","renewal_period":30}`,
			renewal: Renewal{Date: "2024-06-01"},
			want: map[string]any{
				"renewal_date":   "2024-06-01Z",
				"renewal_period": float64(30),
			},
		},
		{
			name:    "nested fields preserved",
			doc:     `{"number":"POL-1","vendor":{"value":"V1","desc":"Vendor"},"fund_distribution":[{"amount":{"sum":"10.50"}}]}`,
			renewal: Renewal{Date: "2025-01-31"},
			want: map[string]any{
				"number":            "POL-1",
				"vendor":            map[string]any{"value": "V1", "desc": "Vendor"},
				"fund_distribution": []any{map[string]any{"amount": map[string]any{"sum": "10.50"}}},
				"renewal_date":      "2025-01-31Z",
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			out, err := ApplyRenewal([]byte(test.doc), test.renewal)
			if err != nil {
				t.Fatal(err)
			}
			var got map[string]any
			if err := json.Unmarshal(out, &got); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyRenewalPreservesValues(t *testing.T) {
	doc := `{"price":{"sum":"19.990"},"note":"café <b>"}`
	out, err := ApplyRenewal([]byte(doc), Renewal{Date: "2024-06-01"})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"price":{"sum":"19.990"}`, `"note":"café <b>"`, `"renewal_date":"2024-06-01Z"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("ApplyRenewal() = %s, want it to contain %s", out, want)
		}
	}
}

func TestApplyRenewalErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: "<po_line/>"},
		{name: "array", doc: `[1, 2]`},
		{name: "null", doc: `null`},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ApplyRenewal([]byte(test.doc), Renewal{Date: "2024-06-01"}); err == nil {
				t.Error("expected an error from ApplyRenewal()")
			}
		})
	}
}

func TestUpdatePOLine(t *testing.T) {
	fake := &fakeAlma{poLines: map[string]string{
		"POL-1": `{"renewal_date":"2020-01-01Z","other_field":"X"}`,
	}}
	if err := UpdatePOLine(t.Context(), fake, "POL-1", Renewal{Date: "2024-06-01"}); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(fake.puts["POL-1"]), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"renewal_date": "2024-06-01Z", "other_field": "X"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdatePOLineFetchFailure(t *testing.T) {
	fake := &fakeAlma{}
	err := UpdatePOLine(t.Context(), fake, "POL-404", Renewal{Date: "2024-06-01"})
	var statusErr *alma.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("UpdatePOLine() error = %v, want *alma.StatusError", err)
	}
	if len(fake.puts) != 0 {
		t.Errorf("PutPOLine called after failed fetch: %v", fake.puts)
	}
}

func TestWorkItems(t *testing.T) {
	for _, test := range []struct {
		name  string
		lists [][]string
		want  []string
	}{
		{
			name:  "set and args",
			lists: [][]string{{"A", "B"}, {"B", "C"}},
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "sorted",
			lists: [][]string{{"POL-9", "POL-10"}, {"POL-1"}},
			want:  []string{"POL-1", "POL-10", "POL-9"},
		},
		{
			name:  "args only with duplicates",
			lists: [][]string{nil, {"C", "C", "", "A"}},
			want:  []string{"A", "C"},
		},
		{
			name:  "empty",
			lists: [][]string{nil, nil},
			want:  nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := WorkItems(test.lists...)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateAll(t *testing.T) {
	rejected := &alma.StatusError{Method: http.MethodPut, URL: "POL-2", StatusCode: http.StatusBadRequest, Body: "invalid renewal date"}
	for _, test := range []struct {
		name     string
		failFast bool
		want     *Report
		wantGets []string
	}{
		{
			name: "accumulate",
			want: &Report{
				Total:   3,
				Updated: []string{"POL-1", "POL-3"},
				Failed: []Failure{{
					ID:         "POL-2",
					StatusCode: http.StatusBadRequest,
					Body:       "invalid renewal date",
					Error:      "updating PO line POL-2: " + rejected.Error(),
				}},
			},
			wantGets: []string{"POL-1", "POL-2", "POL-3"},
		},
		{
			name:     "fail fast",
			failFast: true,
			want: &Report{
				Total:   3,
				Updated: []string{"POL-1"},
				Failed: []Failure{{
					ID:         "POL-2",
					StatusCode: http.StatusBadRequest,
					Body:       "invalid renewal date",
					Error:      "updating PO line POL-2: " + rejected.Error(),
				}},
				Skipped: []string{"POL-3"},
			},
			wantGets: []string{"POL-1", "POL-2"},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			fake := &fakeAlma{
				poLines: map[string]string{
					"POL-1": `{"renewal_date":"2020-01-01Z"}`,
					"POL-2": `{"renewal_date":"2020-01-01Z"}`,
					"POL-3": `{"renewal_date":"2020-01-01Z"}`,
				},
				putErr: map[string]error{"POL-2": rejected},
			}
			type call struct {
				Done, Total int
				ID          string
				Failed      bool
			}
			var calls []call
			opts := Options{
				Renewal:  Renewal{Date: "2024-06-01"},
				FailFast: test.failFast,
				Progress: func(done, total int, id string, err error) {
					calls = append(calls, call{done, total, id, err != nil})
				},
			}
			got := UpdateAll(t.Context(), fake, []string{"POL-1", "POL-2", "POL-3"}, opts)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.wantGets, fake.gets); diff != "" {
				t.Errorf("fetched PO lines mismatch (-want +got):\n%s", diff)
			}
			if len(calls) != len(test.wantGets) {
				t.Fatalf("progress called %d times, want %d", len(calls), len(test.wantGets))
			}
			if second := calls[1]; second != (call{2, 3, "POL-2", true}) {
				t.Errorf("progress for second item = %+v", second)
			}
			if !errors.Is(got.Err(), ErrUpdatesFailed) {
				t.Errorf("Report.Err() = %v, want %v", got.Err(), ErrUpdatesFailed)
			}
		})
	}
}

func TestUpdateAllSuccess(t *testing.T) {
	fake := &fakeAlma{poLines: map[string]string{
		"A": `{"id":"A"}`,
		"B": `{"id":"B"}`,
	}}
	got := UpdateAll(t.Context(), fake, []string{"A", "B"}, Options{Renewal: Renewal{Date: "2024-06-01", Period: 12}})
	want := &Report{Total: 2, Updated: []string{"A", "B"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if err := got.Err(); err != nil {
		t.Errorf("Report.Err() = %v, want nil", err)
	}
	if len(fake.puts) != 2 {
		t.Errorf("got %d PUTs, want 2", len(fake.puts))
	}
}

func TestUpdateAllCancelled(t *testing.T) {
	fake := &fakeAlma{poLines: map[string]string{"A": `{}`, "B": `{}`}}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	got := UpdateAll(ctx, fake, []string{"A", "B"}, Options{Renewal: Renewal{Date: "2024-06-01"}})
	want := &Report{Total: 2, Updated: []string{}, Skipped: []string{"A", "B"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(fake.gets) != 0 {
		t.Errorf("fetched %v after cancellation", fake.gets)
	}
	if !errors.Is(got.Err(), ErrUpdatesFailed) {
		t.Errorf("Report.Err() = %v, want %v", got.Err(), ErrUpdatesFailed)
	}
}
