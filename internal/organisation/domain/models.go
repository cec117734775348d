// Package domain contains persistence models for the organisation service.
package domain

// Organisation is a company that accounts review.
type Organisation struct {
	ID           int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string   `gorm:"type:varchar(255);not null;index:ix_organisations_name" json:"name"`
	URL          string   `gorm:"column:url;type:varchar(255);not null;uniqueIndex:ux_organisations_url" json:"url"`
	Size         int64    `gorm:"not null;default:1;index:ix_organisations_size" json:"size"`
	Headquarters string   `gorm:"type:varchar(255);not null" json:"headquarters"`
	Industry     Industry `gorm:"type:varchar(64);not null;index:ix_organisations_industry" json:"industry"`
	PageVisits   int64    `gorm:"column:page_visits;not null;default:1" json:"page_visits"`
	CreatedAt    int64    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    int64    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the database table name.
func (Organisation) TableName() string { return "organisations" }

// Position is a job title within one organisation.
type Position struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string `gorm:"type:varchar(255);not null;uniqueIndex:ux_positions_org_slug,priority:2" json:"slug"`
	OrgID     int64  `gorm:"column:org_id;not null;index:ix_positions_org;uniqueIndex:ux_positions_org_slug,priority:1" json:"org_id"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the database table name.
func (Position) TableName() string { return "positions" }
