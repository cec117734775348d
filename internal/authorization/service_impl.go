package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectOrganisation = "organisation"
	ObjectPosition     = "position"
	ObjectReview       = "review"
	ObjectInterview    = "interview"
	ObjectVote         = "vote"
)

const (
	ActionOrganisationCreate = "organisation.create"
	ActionPositionCreate     = "position.create"

	ActionReviewCreate    = "review.create"
	ActionReviewDelete    = "review.delete"
	ActionInterviewCreate = "interview.create"
	ActionInterviewDelete = "interview.delete"

	ActionVoteCast    = "vote.cast"
	ActionVoteRetract = "vote.retract"
)

const (
	roleUser  = "role:user"
	roleAdmin = "role:admin"
)

type grant struct {
	object string
	action string
}

// rolePolicies is the built-in policy set. Ownership of a post is checked by
// the post service; casbin only gates the action by account type.
var rolePolicies = map[string][]grant{
	roleUser: {
		{ObjectPosition, ActionPositionCreate},
		{ObjectReview, ActionReviewCreate},
		{ObjectReview, ActionReviewDelete},
		{ObjectInterview, ActionInterviewCreate},
		{ObjectInterview, ActionInterviewDelete},
		{ObjectVote, ActionVoteCast},
		{ObjectVote, ActionVoteRetract},
	},
	roleAdmin: {
		{ObjectOrganisation, ActionOrganisationCreate},
	},
}

// roleParents lists role inheritance as child -> parent.
var roleParents = [][2]string{
	{roleAdmin, roleUser},
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer loads policies from the casbin_rule table and adds any
// built-in policy that is missing.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := ensurePolicies(enforcer); err != nil {
		return nil, fmt.Errorf("seed policies: %w", err)
	}
	return enforcer, enforcer.BuildRoleLinks()
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, accountType string, object string, action string) error {
	subject, object, action, err := normalizeRequest(accountType, object, action)
	if err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if allowed {
		return nil
	}
	s.log.Debug("authorization denied",
		zap.String("subject", subject),
		zap.String("object", object),
		zap.String("action", action),
	)
	return ErrForbidden
}

func normalizeRequest(accountType, object, action string) (string, string, string, error) {
	accountType = strings.ToLower(strings.TrimSpace(accountType))
	object = strings.TrimSpace(object)
	action = strings.TrimSpace(action)
	switch {
	case accountType == "":
		return "", "", "", ErrInvalidActor
	case object == "":
		return "", "", "", ErrInvalidObject
	case action == "":
		return "", "", "", ErrInvalidAction
	}
	return "role:" + accountType, object, action, nil
}

func ensurePolicies(enforcer *casbin.SyncedEnforcer) error {
	var missing [][]string
	for role, grants := range rolePolicies {
		for _, g := range grants {
			rule := []string{role, g.object, g.action}
			has, err := enforcer.HasPolicy(rule)
			if err != nil {
				return err
			}
			if !has {
				missing = append(missing, rule)
			}
		}
	}
	if len(missing) > 0 {
		if _, err := enforcer.AddPolicies(missing); err != nil {
			return err
		}
	}

	for _, link := range roleParents {
		has, err := enforcer.HasGroupingPolicy(link[0], link[1])
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := enforcer.AddGroupingPolicy(link[0], link[1]); err != nil {
			return err
		}
	}
	return nil
}
