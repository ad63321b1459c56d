// Copyright 2025 AICers, Inc.
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIdentityString(t *testing.T) {
	issue := Issue{Owner: "aicers", Repo: "dashboard", Number: 42}
	if got := issue.String(); got != "aicers/dashboard#42" {
		t.Errorf("Issue.String() = %q, want aicers/dashboard#42", got)
	}

	pr := PullRequest{Owner: "aicers", Repo: "dashboard", Number: 7}
	if got := pr.String(); got != "aicers/dashboard#7" {
		t.Errorf("PullRequest.String() = %q", got)
	}

	d := Discussion{Owner: "aicers", Repo: "dashboard", Number: 3}
	if got := d.String(); got != "aicers/dashboard#3" {
		t.Errorf("Discussion.String() = %q", got)
	}
}

// Owner and Repo live in the storage key, never in the serialized value.
func TestIdentityNotSerialized(t *testing.T) {
	issue := Issue{Owner: "aicers", Repo: "dashboard", Number: 1, Title: "t"}
	data, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "aicers") || strings.Contains(string(data), "dashboard") {
		t.Errorf("serialized value leaks the identity: %s", data)
	}
}

func TestKindsCoverBuckets(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 3 {
		t.Fatalf("Kinds() returned %d kinds, want 3", len(kinds))
	}
	want := map[Kind]bool{KindIssue: true, KindPullRequest: true, KindDiscussion: true}
	for _, k := range kinds {
		if !want[k] {
			t.Errorf("unexpected kind %q", k)
		}
	}
}
