package services

import (
	"newsroom-api/models"
)

// Action is a guarded operation in the newsroom.
type Action string

const (
	ActionPrivateAccess         Action = "private.access"
	ActionPostCreate            Action = "post.create"
	ActionPostUpdateLimited     Action = "post.update.limited"
	ActionPostUpdateFull        Action = "post.update.full"
	ActionPostDelete            Action = "post.delete"
	ActionContentCreate         Action = "content.create"
	ActionContentUpdateDraft    Action = "content.update.draft"
	ActionContentUpdateApproved Action = "content.update.approved"
	ActionContentDeleteDraft    Action = "content.delete.draft"
	ActionContentDeleteApproved Action = "content.delete.approved"
	ActionCommentApprove        Action = "comment.approve"
	ActionCommentDeleteAny      Action = "comment.delete.any"
	ActionUserManage            Action = "user.manage"
	ActionSiteManage            Action = "site.manage"
)

type roleSet map[models.Role]bool

var (
	staff          = roleSet{models.RoleReporter: true, models.RoleEditor: true, models.RoleAdmin: true}
	editorsAdmin   = roleSet{models.RoleEditor: true, models.RoleAdmin: true}
	adminOnly      = roleSet{models.RoleAdmin: true}
	reportersAdmin = roleSet{models.RoleReporter: true, models.RoleAdmin: true}
)

// capabilities is the static role x action table. Anything absent is denied.
var capabilities = map[Action]roleSet{
	ActionPrivateAccess:         staff,
	ActionPostCreate:            staff,
	ActionPostUpdateLimited:     staff,
	ActionPostUpdateFull:        editorsAdmin,
	ActionPostDelete:            adminOnly,
	ActionContentCreate:         staff,
	ActionContentUpdateDraft:    staff,
	ActionContentUpdateApproved: editorsAdmin,
	ActionContentDeleteDraft:    reportersAdmin,
	ActionContentDeleteApproved: adminOnly,
	ActionCommentApprove:        editorsAdmin,
	ActionCommentDeleteAny:      adminOnly,
	ActionUserManage:            adminOnly,
	ActionSiteManage:            adminOnly,
}

// Can reports whether role may perform action.
func Can(role models.Role, action Action) bool {
	return capabilities[action][role]
}

// Authorize checks the actor against the table, distinguishing anonymous
// callers from authenticated ones without the capability.
func Authorize(actor models.Actor, action Action) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	if !Can(actor.Role, action) {
		return forbidden(string(action) + " is not allowed for role " + actor.Role.String())
	}
	return nil
}

func requireActor(actor models.Actor) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// contentAction picks the content action that applies given the parent post state.
func contentAction(post *models.Post, deleting bool) Action {
	switch {
	case deleting && post.IsDraft():
		return ActionContentDeleteDraft
	case deleting:
		return ActionContentDeleteApproved
	case post.IsDraft():
		return ActionContentUpdateDraft
	default:
		return ActionContentUpdateApproved
	}
}
