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
	"fmt"
	"time"
)

// Discussion is a flattened snapshot of a GitHub discussion. Identity is
// (Owner, Repo, Number); Owner and Repo come from the storage key on read.
type Discussion struct {
	Owner string `json:"-"`
	Repo  string `json:"-"`

	ID             string                `json:"id"`
	Number         int                   `json:"number"`
	Title          string                `json:"title"`
	Body           string                `json:"body"`
	Category       string                `json:"category"`
	Author         string                `json:"author"`
	UpvoteCount    int                   `json:"upvote_count"`
	Closed         bool                  `json:"closed"`
	ClosedAt       *time.Time            `json:"closed_at,omitempty"`
	IsAnswered     bool                  `json:"is_answered"`
	AnswerChosenAt *time.Time            `json:"answer_chosen_at,omitempty"`
	Answer         *DiscussionComment    `json:"answer,omitempty"`
	Comments       DiscussionCommentList `json:"comments"`
	Labels         []string              `json:"labels"`
	Reactions      ReactionList          `json:"reactions"`
	URL            string                `json:"url"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// String renders the discussion identity as "owner/repo#number".
func (d Discussion) String() string {
	return fmt.Sprintf("%s/%s#%d", d.Owner, d.Repo, d.Number)
}

// DiscussionCommentList is a bounded snapshot of a discussion comment
// connection.
type DiscussionCommentList struct {
	TotalCount int                 `json:"total_count"`
	Nodes      []DiscussionComment `json:"nodes"`
}

// DiscussionComment is a discussion comment or answer, with its first page
// of reactions and replies. Replies never nest further than one level.
type DiscussionComment struct {
	ID          string       `json:"id"`
	Author      string       `json:"author"`
	Body        string       `json:"body"`
	URL         string       `json:"url"`
	UpvoteCount int          `json:"upvote_count"`
	Reactions   ReactionList `json:"reactions"`
	Replies     ReplyList    `json:"replies"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ReplyList is a bounded snapshot of a reply connection.
type ReplyList struct {
	TotalCount int     `json:"total_count"`
	Nodes      []Reply `json:"nodes"`
}

// Reply is a reply on a discussion comment.
type Reply struct {
	ID        string       `json:"id"`
	Author    string       `json:"author"`
	Body      string       `json:"body"`
	URL       string       `json:"url"`
	Reactions ReactionList `json:"reactions"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ReactionList is a bounded snapshot of a reaction connection.
type ReactionList struct {
	TotalCount int        `json:"total_count"`
	Nodes      []Reaction `json:"nodes"`
}

// Reaction is an emoji reaction on a discussion, comment, or reply.
type Reaction struct {
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
