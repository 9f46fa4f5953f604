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
	"maps"
	"slices"
)

// maxMemberOffset stops runaway pagination of a set's members.
const maxMemberOffset = 10000

// MemberProgress is called after each page of members with the number of
// distinct members collected so far and the total reported by Alma.
type MemberProgress func(collected, total int)

// SetMembers returns the sorted, distinct member ids of the set with the
// given id.
//
// Pages are fetched until one arrives without a "member" key or
// maxMemberOffset is reached. The total_record_count of the last page is
// authoritative; if the number of distinct ids differs from it the result
// is discarded and an error wrapping [ErrInconsistentMembers] is returned.
func SetMembers(ctx context.Context, lister MemberLister, setID string, progress MemberProgress) ([]string, error) {
	ids := map[string]struct{}{}
	total := 0
	for offset := 0; offset < maxMemberOffset; offset += pageSize {
		page, err := lister.ListMembers(ctx, setID, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("listing members of set %s at offset %d: %w", setID, offset, err)
		}
		total = page.TotalRecordCount
		if page.Members == nil {
			break
		}
		for _, member := range page.Members {
			ids[member.ID] = struct{}{}
		}
		if progress != nil {
			progress(len(ids), total)
		}
	}
	if len(ids) != total {
		return nil, fmt.Errorf("%w: set %s: collected %d distinct members, Alma reported %d",
			ErrInconsistentMembers, setID, len(ids), total)
	}
	return slices.Sorted(maps.Keys(ids)), nil
}
