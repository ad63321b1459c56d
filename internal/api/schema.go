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

package api

import (
	"github.com/graphql-go/graphql"

	"github.com/aicers/github-dashboard-server/internal/aggregate"
	"github.com/aicers/github-dashboard-server/internal/model"
)

// Output types for the query schema. Most fields resolve by reflection
// against the model structs; explicit resolvers appear only where the
// outward field name differs from the Go field name.

var pageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageInfo",
	Fields: graphql.Fields{
		"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"startCursor":     &graphql.Field{Type: graphql.String},
		"endCursor":       &graphql.Field{Type: graphql.String},
	},
})

var commentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Comment",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"author":         &graphql.Field{Type: graphql.String},
		"body":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"repositoryName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"url":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var commentListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CommentList",
	Fields: graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes":      &graphql.Field{Type: graphql.NewList(commentType)},
	},
})

var projectItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProjectItem",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"projectId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"projectTitle": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"todoStatus": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.ProjectItem).Status, nil
			},
		},
		"todoPriority": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.ProjectItem).Priority, nil
			},
		},
		"todoSize": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.ProjectItem).Size, nil
			},
		},
		"todoInitiationOption": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.ProjectItem).InitiationOption, nil
			},
		},
		"todoPendingDays": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.ProjectItem).PendingDays, nil
			},
		},
	},
})

var projectItemListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProjectItemList",
	Fields: graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes":      &graphql.Field{Type: graphql.NewList(projectItemType)},
	},
})

var subIssueType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SubIssue",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"number":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"state":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"author":    &graphql.Field{Type: graphql.String},
		"assignees": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"closedAt":  &graphql.Field{Type: graphql.DateTime},
	},
})

var subIssueListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SubIssueList",
	Fields: graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes":      &graphql.Field{Type: graphql.NewList(subIssueType)},
	},
})

var parentIssueType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ParentIssue",
	Fields: graphql.Fields{
		"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"number": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var pullRequestRefType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PullRequestRef",
	Fields: graphql.Fields{
		"number":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"state":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"author":    &graphql.Field{Type: graphql.String},
		"url":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"closedAt":  &graphql.Field{Type: graphql.DateTime},
	},
})

var issueType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Issue",
	Fields: graphql.Fields{
		"owner":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"repo":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"number":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"body":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"state":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"author":    &graphql.Field{Type: graphql.String},
		"assignees": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"labels":    &graphql.Field{Type: graphql.NewList(graphql.String)},
		"comments":  &graphql.Field{Type: commentListType},
		"projectItems": &graphql.Field{
			Type: projectItemListType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.Issue).Projects, nil
			},
		},
		"subIssues": &graphql.Field{Type: subIssueListType},
		"parent":    &graphql.Field{Type: parentIssueType},
		"closedByPullRequests": &graphql.Field{
			Type: graphql.NewList(pullRequestRefType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(model.Issue).ClosedBy, nil
			},
		},
		"url":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"closedAt":  &graphql.Field{Type: graphql.DateTime},
	},
})

var reviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Review",
	Fields: graphql.Fields{
		"author":      &graphql.Field{Type: graphql.String},
		"state":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"body":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"url":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"submittedAt": &graphql.Field{Type: graphql.DateTime},
		"comments":    &graphql.Field{Type: commentListType},
	},
})

var reviewListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ReviewList",
	Fields: graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes":      &graphql.Field{Type: graphql.NewList(reviewType)},
	},
})

var commitType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Commit",
	Fields: graphql.Fields{
		"sha":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"message":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"author":        &graphql.Field{Type: graphql.String},
		"committer":     &graphql.Field{Type: graphql.String},
		"additions":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"deletions":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"committedDate": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var commitListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CommitList",
	Fields: graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes":      &graphql.Field{Type: graphql.NewList(commitType)},
	},
})

var pullRequestType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PullRequest",
	Fields: graphql.Fields{
		"owner":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"repo":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"number":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"body":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"state":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"author":         &graphql.Field{Type: graphql.String},
		"assignees":      &graphql.Field{Type: graphql.NewList(graphql.String)},
		"reviewRequests": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"labels":         &graphql.Field{Type: graphql.NewList(graphql.String)},
		"additions":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"deletions":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"comments":       &graphql.Field{Type: commentListType},
		"reviews":        &graphql.Field{Type: reviewListType},
		"commits":        &graphql.Field{Type: commitListType},
		"url":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"closedAt":       &graphql.Field{Type: graphql.DateTime},
		"mergedAt":       &graphql.Field{Type: graphql.DateTime},
	},
})

var reactionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Reaction",
	Fields: graphql.Fields{
		"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"author":    &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var reactionListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ReactionList",
	Fields: graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes":      &graphql.Field{Type: graphql.NewList(reactionType)},
	},
})

var replyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Reply",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"author":    &graphql.Field{Type: graphql.String},
		"body":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"url":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"reactions": &graphql.Field{Type: reactionListType},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var replyListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ReplyList",
	Fields: graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes":      &graphql.Field{Type: graphql.NewList(replyType)},
	},
})

var discussionCommentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DiscussionComment",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"author":      &graphql.Field{Type: graphql.String},
		"body":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"url":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"upvoteCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"reactions":   &graphql.Field{Type: reactionListType},
		"replies":     &graphql.Field{Type: replyListType},
		"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var discussionCommentListType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DiscussionCommentList",
	Fields: graphql.Fields{
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nodes":      &graphql.Field{Type: graphql.NewList(discussionCommentType)},
	},
})

var discussionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Discussion",
	Fields: graphql.Fields{
		"owner":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"repo":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"number":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"body":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"category":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"author":         &graphql.Field{Type: graphql.String},
		"upvoteCount":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"closed":         &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"closedAt":       &graphql.Field{Type: graphql.DateTime},
		"isAnswered":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"answerChosenAt": &graphql.Field{Type: graphql.DateTime},
		"answer":         &graphql.Field{Type: discussionCommentType},
		"comments":       &graphql.Field{Type: discussionCommentListType},
		"labels":         &graphql.Field{Type: graphql.NewList(graphql.String)},
		"reactions":      &graphql.Field{Type: reactionListType},
		"url":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

func connectionTypes(name string, nodeType *graphql.Object) (*graphql.Object, *graphql.Object) {
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Edge",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"node":   &graphql.Field{Type: nodeType},
		},
	})
	conn := graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Connection",
		Fields: graphql.Fields{
			"edges":    &graphql.Field{Type: graphql.NewList(edge)},
			"nodes":    &graphql.Field{Type: graphql.NewList(nodeType)},
			"pageInfo": &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
		},
	})
	return edge, conn
}

var (
	_, issueConnectionType       = connectionTypes("Issue", issueType)
	_, pullRequestConnectionType = connectionTypes("PullRequest", pullRequestType)
	_, discussionConnectionType  = connectionTypes("Discussion", discussionType)
)

var issueStatType = graphql.NewObject(graphql.ObjectConfig{
	Name: "IssueStat",
	Fields: graphql.Fields{
		"openIssueCount":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"resolvedIssueCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var discussionStatType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DiscussionStat",
	Fields: graphql.Fields{
		"totalCount":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"commentCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var pullRequestStatType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PullRequestStat",
	Fields: graphql.Fields{
		"openPrCount": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(aggregate.PullRequestStat).OpenCount, nil
			},
		},
		"mergedPrCount": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(aggregate.PullRequestStat).MergedCount, nil
			},
		},
		"avgReviewCommentCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"avgMergeDays":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var statFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "StatFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"repo":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"author":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"assignee": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"begin":    &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"end":      &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
	},
})

var paginationArgs = graphql.FieldConfigArgument{
	"first":  &graphql.ArgumentConfig{Type: graphql.Int},
	"last":   &graphql.ArgumentConfig{Type: graphql.Int},
	"after":  &graphql.ArgumentConfig{Type: graphql.String},
	"before": &graphql.ArgumentConfig{Type: graphql.String},
}
