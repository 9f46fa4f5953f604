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

package polinerenew

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/googleapis/polinerenew/internal/alma"
	"github.com/urfave/cli/v3"
)

const (
	flagRenewalDate   = "new-renewal-date"
	flagRenewalPeriod = "new-renewal-period"
	flagSetName       = "set-name"
	flagAPIDomain     = "api-domain"
	flagAPIKey        = "api-key"
	flagFailFast      = "fail-fast"
	flagOutput        = "output"
	flagReport        = "report"
	flagVerbose       = "verbose"

	minRenewalPeriod = 1
	maxRenewalPeriod = 365

	outputText = "text"
	outputYAML = "yaml"
)

var (
	// ErrUsage is returned when the command line is invalid. It is detected
	// before any request is sent to Alma.
	ErrUsage = errors.New("invalid usage")

	errMissingRenewalDate = fmt.Errorf("%w: --%s is required", ErrUsage, flagRenewalDate)
	errInvalidRenewalDate = fmt.Errorf("%w: --%s must be a YYYY-MM-DD date", ErrUsage, flagRenewalDate)
	errInvalidPeriod      = fmt.Errorf("%w: --%s must be between %d and %d", ErrUsage, flagRenewalPeriod, minRenewalPeriod, maxRenewalPeriod)
	errMissingAPIKey      = fmt.Errorf("%w: --%s is required", ErrUsage, flagAPIKey)
	errMissingPOLines     = fmt.Errorf("%w: specify --%s and/or at least one PO line id", ErrUsage, flagSetName)
	errInvalidOutput      = fmt.Errorf("%w: --%s must be %q or %q", ErrUsage, flagOutput, outputText, outputYAML)
)

// config holds the validated options of a run.
type config struct {
	renewalDate   string
	renewalPeriod int
	setName       string
	apiDomain     string
	apiKey        string
	poLineIDs     []string
	failFast      bool
	output        string
	reportPath    string
	verbose       bool
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagRenewalDate,
			Usage: "new renewal `date` as YYYY-MM-DD (required)",
		},
		&cli.IntFlag{
			Name:  flagRenewalPeriod,
			Usage: fmt.Sprintf("new renewal period, %d to %d; unchanged when not set", minRenewalPeriod, maxRenewalPeriod),
		},
		&cli.StringFlag{
			Name:  flagSetName,
			Usage: "`name` of the Alma set holding the PO lines to update",
		},
		&cli.StringFlag{
			Name:    flagAPIDomain,
			Usage:   "Alma API `host`",
			Value:   alma.DefaultDomain,
			Sources: cli.EnvVars("ALMA_API_DOMAIN"),
		},
		&cli.StringFlag{
			Name:    flagAPIKey,
			Usage:   "Alma API `key` (required)",
			Sources: cli.EnvVars("ALMA_API_KEY"),
		},
		&cli.BoolFlag{
			Name:  flagFailFast,
			Usage: "stop at the first PO line that cannot be updated",
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "summary `format`: text or yaml",
			Value:   outputText,
		},
		&cli.StringFlag{
			Name:  flagReport,
			Usage: "also write the run report as YAML to `file`",
		},
		&cli.BoolFlag{
			Name:    flagVerbose,
			Aliases: []string{"v"},
			Usage:   "enable verbose logging",
		},
	}
}

// parseFlags reads and validates the options of cmd. Every error it returns
// wraps [ErrUsage].
func parseFlags(cmd *cli.Command) (*config, error) {
	cfg := &config{
		renewalDate: cmd.String(flagRenewalDate),
		setName:     cmd.String(flagSetName),
		apiDomain:   cmd.String(flagAPIDomain),
		apiKey:      cmd.String(flagAPIKey),
		poLineIDs:   cmd.Args().Slice(),
		failFast:    cmd.Bool(flagFailFast),
		output:      cmd.String(flagOutput),
		reportPath:  cmd.String(flagReport),
		verbose:     cmd.Bool(flagVerbose),
	}
	if cmd.IsSet(flagRenewalPeriod) {
		cfg.renewalPeriod = cmd.Int(flagRenewalPeriod)
		if cfg.renewalPeriod < minRenewalPeriod || cfg.renewalPeriod > maxRenewalPeriod {
			return nil, fmt.Errorf("%w, got %d", errInvalidPeriod, cfg.renewalPeriod)
		}
	}
	if err := validateRenewalDate(cfg.renewalDate); err != nil {
		return nil, err
	}
	if cfg.apiKey == "" {
		return nil, errMissingAPIKey
	}
	if cfg.setName == "" && len(cfg.poLineIDs) == 0 {
		return nil, errMissingPOLines
	}
	if !slices.Contains([]string{outputText, outputYAML}, cfg.output) {
		return nil, fmt.Errorf("%w, got %q", errInvalidOutput, cfg.output)
	}
	return cfg, nil
}

func validateRenewalDate(date string) error {
	if date == "" {
		return errMissingRenewalDate
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRenewalDate, err)
	}
	return nil
}
