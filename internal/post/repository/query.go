package repository

import (
	"fmt"

	"github.com/smallbiznis/ratrace/internal/post/domain"
	"gorm.io/gorm"
)

const postAlias = "p"

// tiebreak keeps every sort order deterministic.
const tiebreak = "p.created_at DESC, p.id DESC"

// voteScoreSubquery aggregates one row per voted post of kind.
func voteScoreSubquery(conn *gorm.DB, kind domain.Kind) *gorm.DB {
	column := kind.VoteColumn()
	return conn.Session(&gorm.Session{NewDB: true}).
		Table(kind.VoteTable()).
		Select(fmt.Sprintf(`%s AS post_id,
			SUM(vote) AS vote_count,
			SUM(CASE WHEN vote > 0 THEN 1 ELSE 0 END) AS upvotes,
			SUM(CASE WHEN vote < 0 THEN 1 ELSE 0 END) AS downvotes`, column)).
		Group(column)
}

// listSelect is the projection shared by review and interview listings.
func listSelect() string {
	return `p.*,
		pos.name AS position_name,
		a.username AS author,
		a.anonymous AS author_anonymous,
		COALESCE(vs.vote_count, 0) AS vote_count,
		COALESCE(vs.upvotes, 0) AS upvotes,
		COALESCE(vs.downvotes, 0) AS downvotes,
		COALESCE(mv.vote, 0) AS my_vote`
}

// buildListQuery assembles the listing statement for kind: filters, vote
// score join, viewer vote join, sort order and window.
func buildListQuery(conn *gorm.DB, kind domain.Kind, f domain.Filter) *gorm.DB {
	q := applyFilter(conn.Table(kind.PostTable()+" AS "+postAlias), f).
		Select(listSelect()).
		Joins("JOIN positions pos ON pos.id = p.position_id").
		Joins("JOIN accounts a ON a.id = p.account_id").
		Joins("LEFT JOIN (?) AS vs ON vs.post_id = p.id", voteScoreSubquery(conn, kind)).
		Joins(fmt.Sprintf("LEFT JOIN %s mv ON mv.%s = p.id AND mv.account_id = ?", kind.VoteTable(), kind.VoteColumn()), f.ViewerID).
		Order(orderClause(kind, f.Sort))

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	return q
}

// buildCountQuery counts rows matching f, ignoring order and window.
func buildCountQuery(conn *gorm.DB, kind domain.Kind, f domain.Filter) *gorm.DB {
	return applyFilter(conn.Table(kind.PostTable()+" AS "+postAlias), f)
}

func applyFilter(q *gorm.DB, f domain.Filter) *gorm.DB {
	if f.OrgID > 0 {
		q = q.Where("p.org_id = ?", f.OrgID)
	}
	if f.AccountID > 0 {
		q = q.Where("p.account_id = ?", f.AccountID)
	}
	if f.PositionID > 0 {
		q = q.Where("p.position_id = ?", f.PositionID)
	}
	if f.Tag != "" {
		q = q.Where("p.tag = ?", f.Tag)
	}
	return q
}

// orderClause maps a sort order to SQL. Orders that do not apply to kind fall
// back to recency.
func orderClause(kind domain.Kind, sort domain.SortOrder) string {
	switch sort {
	case domain.SortTenure:
		if kind == domain.KindReview {
			return "p.duration_years DESC, " + tiebreak
		}
	case domain.SortCompensation:
		if kind == domain.KindReview {
			return "p.salary DESC, " + tiebreak
		}
		return "p.offer DESC, " + tiebreak
	case domain.SortUpvotes:
		return "COALESCE(vs.vote_count, 0) DESC, " + tiebreak
	case domain.SortDownvotes:
		return "COALESCE(vs.vote_count, 0) ASC, " + tiebreak
	}
	return tiebreak
}
