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
)

// maxSetOffset bounds the sets listing scan. An institution with more than
// this many sets is not expected.
const maxSetOffset = 1000

// FindSetID returns the id of the first set whose name is exactly name.
// Paging stops at the first match. A page without a "set" key, or reaching
// maxSetOffset, yields [ErrSetNotFound]; a failed page fetch is returned as
// is.
func FindSetID(ctx context.Context, lister SetLister, name string) (string, error) {
	for offset := 0; offset < maxSetOffset; offset += pageSize {
		page, err := lister.ListSets(ctx, pageSize, offset)
		if err != nil {
			return "", fmt.Errorf("listing sets at offset %d: %w", offset, err)
		}
		if page.Sets == nil {
			return "", fmt.Errorf("%w: %q", ErrSetNotFound, name)
		}
		for _, set := range page.Sets {
			if set.Name == name {
				return set.ID, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q not among the first %d sets", ErrSetNotFound, name, maxSetOffset)
}
