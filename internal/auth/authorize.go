package auth

import (
	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

type Action string

const (
	ActionManageJobs         Action = "jobs:manage"
	ActionReviewApplications Action = "applications:review"
	ActionApply              Action = "applications:apply"
)

var allowed = map[models.UserRole]map[Action]bool{
	models.RoleAdmin: {
		ActionManageJobs:         true,
		ActionReviewApplications: true,
		ActionApply:              true,
	},
	models.RoleStudent: {
		ActionApply: true,
	},
}

// Authorize is the single allow/deny decision for role-gated operations.
func Authorize(p *Principal, action Action) error {
	const op = "auth.Authorize"
	if p == nil || p.ID == "" {
		return utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if !allowed[p.Role][action] {
		return utils.E(utils.CodeForbidden, op, "you do not have permission to perform this action", nil)
	}
	return nil
}
