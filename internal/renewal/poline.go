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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

const (
	renewalDateField   = "renewal_date"
	renewalPeriodField = "renewal_period"

	// utcMarker is appended to the calendar date when writing renewal_date.
	utcMarker = "Z"
)

// Renewal holds the new renewal values for a PO line.
type Renewal struct {
	// Date is the new renewal date as YYYY-MM-DD.
	Date string

	// Period is the new renewal period. Zero leaves the PO line's period
	// unchanged.
	Period int
}

// UpdatePOLine fetches the PO line, applies r and writes the whole document
// back. Nothing is written if the fetch fails.
func UpdatePOLine(ctx context.Context, store POLineStore, id string, r Renewal) error {
	doc, err := store.GetPOLine(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching PO line %s: %w", id, err)
	}
	updated, err := ApplyRenewal(doc, r)
	if err != nil {
		return fmt.Errorf("PO line %s: %w", id, err)
	}
	if err := store.PutPOLine(ctx, id, updated); err != nil {
		return fmt.Errorf("updating PO line %s: %w", id, err)
	}
	return nil
}

// ApplyRenewal returns doc, a JSON object, with renewal_date set from r and,
// when r.Period is non-zero, renewal_period set. The values of all other
// members are carried over as fetched.
func ApplyRenewal(doc []byte, r Renewal) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("decoding PO line: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("decoding PO line: document is not a JSON object")
	}
	date, err := json.Marshal(r.Date + utcMarker)
	if err != nil {
		return nil, err
	}
	fields[renewalDateField] = date
	if r.Period != 0 {
		period, err := json.Marshal(r.Period)
		if err != nil {
			return nil, err
		}
		fields[renewalPeriodField] = period
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
