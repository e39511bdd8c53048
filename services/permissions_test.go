package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newsroom-api/models"
	"newsroom-api/services"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role   models.Role
		action services.Action
		want   bool
	}{
		{models.RoleUser, services.ActionPrivateAccess, false},
		{models.RoleReporter, services.ActionPrivateAccess, true},
		{models.RoleReporter, services.ActionPostCreate, true},
		{models.RoleReporter, services.ActionPostUpdateLimited, true},
		{models.RoleReporter, services.ActionPostUpdateFull, false},
		{models.RoleEditor, services.ActionPostUpdateFull, true},
		{models.RoleEditor, services.ActionPostDelete, false},
		{models.RoleAdmin, services.ActionPostDelete, true},
		{models.RoleReporter, services.ActionContentUpdateDraft, true},
		{models.RoleReporter, services.ActionContentUpdateApproved, false},
		{models.RoleEditor, services.ActionContentUpdateApproved, true},
		{models.RoleReporter, services.ActionContentDeleteDraft, true},
		{models.RoleEditor, services.ActionContentDeleteDraft, false},
		{models.RoleEditor, services.ActionContentDeleteApproved, false},
		{models.RoleAdmin, services.ActionContentDeleteApproved, true},
		{models.RoleReporter, services.ActionCommentApprove, false},
		{models.RoleEditor, services.ActionCommentApprove, true},
		{models.RoleEditor, services.ActionCommentDeleteAny, false},
		{models.RoleAdmin, services.ActionCommentDeleteAny, true},
		{models.RoleEditor, services.ActionUserManage, false},
		{models.RoleAdmin, services.ActionUserManage, true},
		{models.RoleEditor, services.ActionSiteManage, false},
		{models.RoleAdmin, services.ActionSiteManage, true},
	}

	for _, tt := range tests {
		t.Run(tt.role.String()+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, services.Can(tt.role, tt.action))
		})
	}
}

func TestAuthorize(t *testing.T) {
	assert.ErrorIs(t, services.Authorize(models.Actor{}, services.ActionPrivateAccess), services.ErrUnauthenticated)
	assert.ErrorIs(t, services.Authorize(models.Actor{ID: 7, Role: models.RoleUser}, services.ActionPrivateAccess), services.ErrForbidden)
	assert.NoError(t, services.Authorize(models.Actor{ID: 7, Role: models.RoleEditor}, services.ActionPrivateAccess))
	assert.ErrorIs(t, services.Authorize(models.Actor{ID: 7, Role: models.RoleEditor}, services.Action("unknown")), services.ErrForbidden)
}
