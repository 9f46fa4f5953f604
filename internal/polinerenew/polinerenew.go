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

// Package polinerenew implements the polinerenew command, which sets a new
// renewal date (and optionally renewal period) on Alma PO lines selected by
// set name and/or PO line id.
package polinerenew

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/googleapis/polinerenew/internal/alma"
	"github.com/googleapis/polinerenew/internal/renewal"
	"github.com/googleapis/polinerenew/internal/yaml"
	"github.com/urfave/cli/v3"
)

// almaAPI is the part of the Alma API used by a run.
type almaAPI interface {
	renewal.Prober
	renewal.SetLister
	renewal.MemberLister
	renewal.POLineStore
}

// Run executes the polinerenew command with the given arguments. The first
// argument is the program name.
func Run(ctx context.Context, args ...string) error {
	return newCommand(os.Stdout, os.Stderr).Run(ctx, args)
}

// ExitCode maps an error returned by [Run] to a process exit code: 0 for
// nil, 2 for usage errors and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "polinerenew",
		Usage:     "set a new renewal date on Alma PO lines",
		UsageText: "polinerenew --new-renewal-date YYYY-MM-DD --api-key KEY [--set-name NAME] [po-line-id ...]",
		Description: `Examples:
  polinerenew --new-renewal-date 2025-07-01 --api-key $KEY --set-name "Serials renewing in July"
  polinerenew --new-renewal-date 2025-07-01 --new-renewal-period 365 POL-1234 POL-5678

The PO lines of the named set and the PO line ids given as arguments are
merged, sorted and updated one at a time. For each PO line, polinerenew:
  1. Fetches the PO line
  2. Sets renewal_date, and renewal_period when --new-renewal-period is given
  3. Writes the whole PO line back

A PO line that cannot be updated does not stop the others unless --fail-fast
is set. The command exits with a non-zero status if any PO line failed.`,
		Flags:     flags(),
		Writer:    stdout,
		ErrWriter: stderr,
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := parseFlags(cmd)
			if err != nil {
				return err
			}
			setupLogger(stderr, cfg.verbose)
			client := alma.New(cfg.apiDomain, cfg.apiKey, nil)
			return run(ctx, cfg, client, stdout, newProgress(stderr))
		},
	}
}

func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	handler := slog.NewTextHandler(w, opts)
	slog.SetDefault(slog.New(handler))
}

// run performs a renewal run. Everything before the first PO line update
// fails the run immediately; update failures are collected in the report.
func run(ctx context.Context, cfg *config, api almaAPI, stdout io.Writer, p *progress) error {
	if err := renewal.Preflight(ctx, api, alma.SetsPath, alma.POLinesPath); err != nil {
		return err
	}

	var setMembers []string
	if cfg.setName != "" {
		setID, err := renewal.FindSetID(ctx, api, cfg.setName)
		if err != nil {
			return err
		}
		slog.Info("found set", "name", cfg.setName, "id", setID)
		setMembers, err = renewal.SetMembers(ctx, api, setID, p.members)
		p.done()
		if err != nil {
			return err
		}
	}

	ids := renewal.WorkItems(setMembers, cfg.poLineIDs)
	if len(ids) == 0 {
		slog.Warn("no PO lines to update", "set", cfg.setName)
	}
	slog.Info("updating PO lines", "count", len(ids), "renewal_date", cfg.renewalDate, "renewal_period", cfg.renewalPeriod)
	report := renewal.UpdateAll(ctx, api, ids, renewal.Options{
		Renewal: renewal.Renewal{
			Date:   cfg.renewalDate,
			Period: cfg.renewalPeriod,
		},
		FailFast: cfg.failFast,
		Progress: p.item,
	})
	p.done()

	if cfg.reportPath != "" {
		if err := yaml.Write(cfg.reportPath, report); err != nil {
			return fmt.Errorf("writing report to %s: %w", cfg.reportPath, err)
		}
	}
	if err := writeReport(stdout, cfg.output, report); err != nil {
		return err
	}
	return report.Err()
}
