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
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/googleapis/polinerenew/internal/alma"
)

// WorkItems merges the given id lists into one sorted list without
// duplicates or empty ids.
func WorkItems(lists ...[]string) []string {
	var ids []string
	for _, list := range lists {
		for _, id := range list {
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// ItemProgress is called after each PO line has been processed. done counts
// the PO lines processed so far, including id; err is nil on success.
type ItemProgress func(done, total int, id string, err error)

// Options configures [UpdateAll].
type Options struct {
	Renewal Renewal

	// FailFast stops the batch at the first failed PO line. The remaining
	// ids are reported as skipped.
	FailFast bool

	Progress ItemProgress
}

// Failure describes a PO line that could not be updated.
type Failure struct {
	ID string `yaml:"id"`

	// StatusCode and Body are set when Alma rejected a request.
	StatusCode int    `yaml:"status_code,omitempty"`
	Body       string `yaml:"body,omitempty"`

	// Error is the full error message.
	Error string `yaml:"error"`
}

// Report is the outcome of a batch of PO line updates.
type Report struct {
	// Total is the number of distinct PO lines in the batch.
	Total int `yaml:"total"`
	// Updated lists the PO lines written back successfully.
	Updated []string  `yaml:"updated"`
	Failed  []Failure `yaml:"failed,omitempty"`
	// Skipped lists the PO lines not attempted after the batch stopped.
	Skipped []string `yaml:"skipped,omitempty"`
}

// Err returns an error wrapping [ErrUpdatesFailed] if any PO line failed or
// was skipped, and nil otherwise.
func (r *Report) Err() error {
	if len(r.Failed) == 0 && len(r.Skipped) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d failed, %d skipped out of %d",
		ErrUpdatesFailed, len(r.Failed), len(r.Skipped), r.Total)
}

// UpdateAll applies opts.Renewal to every PO line in ids, in order. A failed
// PO line is recorded in the report and, unless opts.FailFast is set, does
// not stop the remaining updates. A cancelled context stops the batch and
// the remaining ids are reported as skipped.
func UpdateAll(ctx context.Context, store POLineStore, ids []string, opts Options) *Report {
	report := &Report{
		Total:   len(ids),
		Updated: []string{},
	}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			slog.Warn("stopping PO line updates", "error", err)
			report.Skipped = append(report.Skipped, ids[i:]...)
			break
		}
		err := UpdatePOLine(ctx, store, id, opts.Renewal)
		if err != nil {
			slog.Debug("PO line update failed", "id", id, "error", err)
			report.Failed = append(report.Failed, newFailure(id, err))
		} else {
			slog.Debug("PO line updated", "id", id)
			report.Updated = append(report.Updated, id)
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(ids), id, err)
		}
		if err != nil && opts.FailFast {
			report.Skipped = append(report.Skipped, ids[i+1:]...)
			break
		}
	}
	return report
}

func newFailure(id string, err error) Failure {
	f := Failure{ID: id, Error: err.Error()}
	var statusErr *alma.StatusError
	if errors.As(err, &statusErr) {
		f.StatusCode = statusErr.StatusCode
		f.Body = statusErr.Body
	}
	return f
}
