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
	"net/http"

	"github.com/googleapis/polinerenew/internal/alma"
)

// fakeAlma serves canned pages and PO lines and records the calls made.
type fakeAlma struct {
	denied map[string]bool

	setPages    []*alma.SetPage
	memberPages []*alma.MemberPage
	pageErr     error

	poLines map[string]string
	getErr  map[string]error
	putErr  map[string]error

	probed     []string
	setCalls   int
	memberArgs []int
	gets       []string
	puts       map[string]string
}

func (f *fakeAlma) CheckAccess(ctx context.Context, path string) error {
	f.probed = append(f.probed, path)
	if f.denied[path] {
		return &alma.StatusError{Method: http.MethodGet, URL: path, StatusCode: http.StatusUnauthorized, Body: "denied"}
	}
	return nil
}

func (f *fakeAlma) ListSets(ctx context.Context, limit, offset int) (*alma.SetPage, error) {
	f.setCalls++
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	i := offset / limit
	if i >= len(f.setPages) {
		return &alma.SetPage{}, nil
	}
	return f.setPages[i], nil
}

func (f *fakeAlma) ListMembers(ctx context.Context, setID string, limit, offset int) (*alma.MemberPage, error) {
	f.memberArgs = append(f.memberArgs, offset)
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	i := offset / limit
	if i >= len(f.memberPages) {
		total := 0
		if len(f.memberPages) > 0 {
			total = f.memberPages[len(f.memberPages)-1].TotalRecordCount
		}
		return &alma.MemberPage{TotalRecordCount: total}, nil
	}
	return f.memberPages[i], nil
}

func (f *fakeAlma) GetPOLine(ctx context.Context, id string) ([]byte, error) {
	f.gets = append(f.gets, id)
	if err := f.getErr[id]; err != nil {
		return nil, err
	}
	doc, ok := f.poLines[id]
	if !ok {
		return nil, &alma.StatusError{Method: http.MethodGet, URL: id, StatusCode: http.StatusBadRequest, Body: fmt.Sprintf("PO line %s not found", id)}
	}
	return []byte(doc), nil
}

func (f *fakeAlma) PutPOLine(ctx context.Context, id string, doc []byte) error {
	if err := f.putErr[id]; err != nil {
		return err
	}
	if f.puts == nil {
		f.puts = map[string]string{}
	}
	f.puts[id] = string(doc)
	return nil
}

func sets(names ...string) []alma.Set {
	var s []alma.Set
	for _, name := range names {
		s = append(s, alma.Set{ID: "id-" + name, Name: name})
	}
	return s
}

func members(total int, ids ...string) *alma.MemberPage {
	page := &alma.MemberPage{Members: []alma.Member{}, TotalRecordCount: total}
	for _, id := range ids {
		page.Members = append(page.Members, alma.Member{ID: id})
	}
	return page
}
