// Package domain contains vote persistence models and contracts.
package domain

// ReviewVote is one account's vote on one review.
type ReviewVote struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID int64 `gorm:"column:account_id;not null;uniqueIndex:ux_review_votes_account_review,priority:1" json:"account_id"`
	ReviewID  int64 `gorm:"column:review_id;not null;index:ix_review_votes_review;uniqueIndex:ux_review_votes_account_review,priority:2" json:"review_id"`
	Vote      int   `gorm:"not null;check:chk_review_votes_vote,vote = 1 OR vote = -1" json:"vote"`
	CreatedAt int64 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64 `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the database table name.
func (ReviewVote) TableName() string { return "review_votes" }

// InterviewVote is one account's vote on one interview.
type InterviewVote struct {
	ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID   int64 `gorm:"column:account_id;not null;uniqueIndex:ux_interview_votes_account_interview,priority:1" json:"account_id"`
	InterviewID int64 `gorm:"column:interview_id;not null;index:ix_interview_votes_interview;uniqueIndex:ux_interview_votes_account_interview,priority:2" json:"interview_id"`
	Vote        int   `gorm:"not null;check:chk_interview_votes_vote,vote = 1 OR vote = -1" json:"vote"`
	CreatedAt   int64 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   int64 `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the database table name.
func (InterviewVote) TableName() string { return "interview_votes" }

// VoteView is a vote of either kind as account listings return it.
type VoteView struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"account_id"`
	PostID    int64  `json:"post_id"`
	Kind      string `json:"kind"`
	Vote      int    `json:"vote"`
	CreatedAt int64  `json:"created_at"`
}
