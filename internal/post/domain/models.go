// Package domain contains persistence models and contracts for reviews and interviews.
package domain

// Review is a first-hand report of working at an organisation.
type Review struct {
	ID            int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Salary        int64    `gorm:"not null;default:0;index:ix_reviews_salary" json:"salary"`
	Currency      Currency `gorm:"type:varchar(8);not null;default:'usd'" json:"currency"`
	Location      string   `gorm:"type:varchar(255);not null" json:"location"`
	DurationYears float64  `gorm:"column:duration_years;not null" json:"duration_years"`
	Body          string   `gorm:"type:text;not null" json:"body"`
	Tag           Tag      `gorm:"type:varchar(16);not null;default:'average'" json:"tag"`
	AccountID     int64    `gorm:"column:account_id;not null;index:ix_reviews_account" json:"account_id"`
	OrgID         int64    `gorm:"column:org_id;not null;index:ix_reviews_org" json:"org_id"`
	PositionID    int64    `gorm:"column:position_id;not null;index:ix_reviews_position" json:"position_id"`
	CreatedAt     int64    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     int64    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the database table name.
func (Review) TableName() string { return "reviews" }

// Interview is a first-hand report of an interview process.
type Interview struct {
	ID         int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Offer      int64    `gorm:"not null;default:0;index:ix_interviews_offer" json:"offer"`
	Currency   Currency `gorm:"type:varchar(8);not null;default:'usd'" json:"currency"`
	Location   string   `gorm:"type:varchar(255);not null" json:"location"`
	Stages     int      `gorm:"not null" json:"stages"`
	Body       string   `gorm:"type:text;not null" json:"body"`
	Tag        Tag      `gorm:"type:varchar(16);not null;default:'average'" json:"tag"`
	AccountID  int64    `gorm:"column:account_id;not null;index:ix_interviews_account" json:"account_id"`
	OrgID      int64    `gorm:"column:org_id;not null;index:ix_interviews_org" json:"org_id"`
	PositionID int64    `gorm:"column:position_id;not null;index:ix_interviews_position" json:"position_id"`
	CreatedAt  int64    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  int64    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the database table name.
func (Interview) TableName() string { return "interviews" }

// VoteScore is the aggregate of a post's votes. Posts without votes score 0.
type VoteScore struct {
	VoteCount int64 `json:"vote_count"`
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
	// MyVote is the viewer's own vote, 0 when the viewer has not voted.
	MyVote int `json:"my_vote"`
}

// ReviewView is a review row as listings return it.
type ReviewView struct {
	Review
	VoteScore
	PositionName    string `json:"position_name"`
	Author          string `json:"author"`
	AuthorAnonymous bool   `json:"-"`
}

// InterviewView is an interview row as listings return it.
type InterviewView struct {
	Interview
	VoteScore
	PositionName    string `json:"position_name"`
	Author          string `json:"author"`
	AuthorAnonymous bool   `json:"-"`
}
