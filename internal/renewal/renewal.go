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

// Package renewal implements the steps of a PO line renewal run: access
// preflight, set lookup, set member enumeration and the per PO line
// read-modify-write update.
//
// All steps are sequential and talk to Alma through the small interfaces
// declared here, which *alma.Client satisfies.
package renewal

import (
	"context"
	"errors"

	"github.com/googleapis/polinerenew/internal/alma"
)

// pageSize is the limit used for every paginated listing.
const pageSize = 50

var (
	// ErrAccess is returned when a preflight probe fails.
	ErrAccess = errors.New("cannot access Alma API")

	// ErrSetNotFound is returned when no set has the requested name.
	ErrSetNotFound = errors.New("set not found")

	// ErrInconsistentMembers is returned when the number of distinct members
	// collected for a set differs from the count reported by Alma.
	ErrInconsistentMembers = errors.New("inconsistent set member count")

	// ErrUpdatesFailed is returned when at least one PO line was not updated.
	ErrUpdatesFailed = errors.New("PO line updates failed")
)

// Prober checks that an API path is reachable with the configured
// credentials.
type Prober interface {
	CheckAccess(ctx context.Context, path string) error
}

// SetLister lists the sets defined in Alma.
type SetLister interface {
	ListSets(ctx context.Context, limit, offset int) (*alma.SetPage, error)
}

// MemberLister lists the members of a set.
type MemberLister interface {
	ListMembers(ctx context.Context, setID string, limit, offset int) (*alma.MemberPage, error)
}

// POLineStore reads and replaces PO line documents.
type POLineStore interface {
	GetPOLine(ctx context.Context, id string) ([]byte, error)
	PutPOLine(ctx context.Context, id string, doc []byte) error
}

var _ interface {
	Prober
	SetLister
	MemberLister
	POLineStore
} = (*alma.Client)(nil)
