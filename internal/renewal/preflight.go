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
	"fmt"
	"log/slog"
)

// Preflight verifies that every path can be reached before any PO line is
// modified. The first failing probe is returned wrapped in [ErrAccess].
func Preflight(ctx context.Context, prober Prober, paths ...string) error {
	for _, path := range paths {
		slog.Debug("checking API access", "path", path)
		if err := prober.CheckAccess(ctx, path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAccess, path, err)
		}
	}
	return nil
}
