package domain

import (
	"strings"
)

// Kind tells reviews and interviews apart wherever the two share a code path.
type Kind string

const (
	KindReview    Kind = "review"
	KindInterview Kind = "interview"
)

type kindSpec struct {
	postTable  string
	voteTable  string
	voteColumn string
}

var kindSpecs = map[Kind]kindSpec{
	KindReview:    {postTable: "reviews", voteTable: "review_votes", voteColumn: "review_id"},
	KindInterview: {postTable: "interviews", voteTable: "interview_votes", voteColumn: "interview_id"},
}

// ParseKind accepts the post kind names and the vote model names clients send.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "review", "reviews", "reviewvote", "review_vote":
		return KindReview, nil
	case "interview", "interviews", "interviewvote", "interview_vote":
		return KindInterview, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

func (k Kind) String() string { return string(k) }

// PostTable is the table holding posts of this kind.
func (k Kind) PostTable() string { return kindSpecs[k].postTable }

// VoteTable is the table holding votes on posts of this kind.
func (k Kind) VoteTable() string { return kindSpecs[k].voteTable }

// VoteColumn is the vote table column referencing the post.
func (k Kind) VoteColumn() string { return kindSpecs[k].voteColumn }
