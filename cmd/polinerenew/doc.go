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

//go:generate go run -tags docgen ../doc_generate.go -cmd .

/*
Polinerenew sets a new renewal date on Alma purchase order lines.

Usage:

	polinerenew --new-renewal-date YYYY-MM-DD --api-key KEY [--set-name NAME] [po-line-id ...]

NAME:

	polinerenew - set a new renewal date on Alma PO lines

USAGE:

	polinerenew --new-renewal-date YYYY-MM-DD --api-key KEY [--set-name NAME] [po-line-id ...]

DESCRIPTION:

	Examples:
	  polinerenew --new-renewal-date 2025-07-01 --api-key $KEY --set-name "Serials renewing in July"
	  polinerenew --new-renewal-date 2025-07-01 --new-renewal-period 365 POL-1234 POL-5678

	The PO lines of the named set and the PO line ids given as arguments are
	merged, sorted and updated one at a time. For each PO line, polinerenew:
	  1. Fetches the PO line
	  2. Sets renewal_date, and renewal_period when --new-renewal-period is given
	  3. Writes the whole PO line back

	A PO line that cannot be updated does not stop the others unless --fail-fast
	is set. The command exits with a non-zero status if any PO line failed.

GLOBAL OPTIONS:

	--new-renewal-date date       new renewal date as YYYY-MM-DD (required)
	--new-renewal-period int      new renewal period, 1 to 365; unchanged when not set (default: 0)
	--set-name name               name of the Alma set holding the PO lines to update
	--api-domain host             Alma API host (default: "api-ca.hosted.exlibrisgroup.com") [$ALMA_API_DOMAIN]
	--api-key key                 Alma API key (required) [$ALMA_API_KEY]
	--fail-fast                   stop at the first PO line that cannot be updated (default: false)
	--output format, -o format    summary format: text or yaml (default: "text")
	--report file                 also write the run report as YAML to file
	--verbose, -v                 enable verbose logging (default: false)
	--help, -h                    show help
*/
package main
