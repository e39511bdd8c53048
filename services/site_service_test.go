package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom-api/models"
	"newsroom-api/services"
)

func TestSiteService_Settings(t *testing.T) {
	f := newFixture(t)
	editor := f.actor(t, models.RoleEditor)

	empty, err := f.site.Settings(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.ID)

	_, err = f.site.UpdateSettings(f.ctx, editor, models.SiteSettingsInput{Copyright: ptr("x")})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.site.UpdateSettings(f.ctx, f.admin, models.SiteSettingsInput{Logo: ptr("not a url")})
	assert.ErrorIs(t, err, services.ErrValidation)

	first, err := f.site.UpdateSettings(f.ctx, f.admin, models.SiteSettingsInput{
		Copyright:         ptr(" © Newsroom "),
		SearchPlaceholder: ptr("Search news"),
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "© Newsroom", first.Copyright)

	second, err := f.site.UpdateSettings(f.ctx, f.admin, models.SiteSettingsInput{FooterText: ptr("All rights reserved")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "© Newsroom", second.Copyright)
	assert.Equal(t, "Search news", second.SearchPlaceholder)

	all, err := f.db.Settings().All(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	current, err := f.site.Settings(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "All rights reserved", current.FooterText)
}

func TestSiteService_SocialLinks(t *testing.T) {
	f := newFixture(t)

	_, err := f.site.CreateSocial(f.ctx, f.admin, models.SocialMediaInput{Title: "X", Link: "https://x.com/news", Position: "nowhere"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.site.CreateSocial(f.ctx, f.admin, models.SocialMediaInput{Title: "X", Link: "x.com", Position: models.PositionSide})
	assert.ErrorIs(t, err, services.ErrValidation)

	header, err := f.site.CreateSocial(f.ctx, f.admin, models.SocialMediaInput{Title: "Facebook", Link: "https://facebook.com/news", Position: "Header"})
	require.NoError(t, err)
	assert.Equal(t, models.PositionHeader, header.Position)

	_, err = f.site.CreateSocial(f.ctx, f.admin, models.SocialMediaInput{Title: "YouTube", Link: "https://youtube.com/news", Position: models.PositionFooter})
	require.NoError(t, err)

	all, err := f.site.SocialLinks(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	footer, err := f.site.SocialLinks(f.ctx, models.PositionFooter)
	require.NoError(t, err)
	require.Len(t, footer, 1)
	assert.Equal(t, "YouTube", footer[0].Title)

	_, err = f.site.SocialLinks(f.ctx, "middle")
	assert.ErrorIs(t, err, services.ErrValidation)

	moved, err := f.site.UpdateSocial(f.ctx, f.admin, header.ID, models.SocialMediaInput{Title: "Facebook", Link: "https://facebook.com/news", Position: models.PositionSide})
	require.NoError(t, err)
	assert.Equal(t, models.PositionSide, moved.Position)

	require.NoError(t, f.site.DeleteSocial(f.ctx, f.admin, header.ID))
	_, err = f.site.GetSocial(f.ctx, f.admin, header.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSiteService_ContactForm(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		in    models.ContactInput
		field string
	}{
		{"missing first name", models.ContactInput{LastName: "Doe", Email: "a@example.com", Message: "hi"}, "first_name"},
		{"digits in last name", models.ContactInput{FirstName: "Jane", LastName: "D0e", Email: "a@example.com", Message: "hi"}, "last_name"},
		{"bad email", models.ContactInput{FirstName: "Jane", LastName: "Doe", Email: "a@", Message: "hi"}, "email"},
		{"markup only message", models.ContactInput{FirstName: "Jane", LastName: "Doe", Email: "a@example.com", Message: "<p></p>"}, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.site.SubmitContact(f.ctx, tt.in)
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	msg, err := f.site.SubmitContact(f.ctx, models.ContactInput{
		FirstName:   "Mary Jane",
		LastName:    "Öztürk",
		Email:       "Mary@Example.COM",
		PhoneNumber: ptr(" +994 50 000 00 00 "),
		Message:     "<script>alert(1)</script>Please call me",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mary@example.com", msg.Email)
	assert.Equal(t, "Please call me", msg.Message)
	require.NotNil(t, msg.PhoneNumber)
	assert.Equal(t, "+994 50 000 00 00", *msg.PhoneNumber)
	assert.False(t, msg.SendDate.IsZero())

	noPhone, err := f.site.SubmitContact(f.ctx, models.ContactInput{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Message: "hi", PhoneNumber: ptr("  ")})
	require.NoError(t, err)
	assert.Nil(t, noPhone.PhoneNumber)

	_, _, err = f.site.ListContacts(f.ctx, f.actor(t, models.RoleEditor), models.Page{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, services.ErrForbidden)

	items, total, err := f.site.ListContacts(f.ctx, f.admin, models.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	got, err := f.site.GetContact(f.ctx, f.admin, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Please call me", got.Message)
}

func TestSiteService_Opinions(t *testing.T) {
	f := newFixture(t)

	_, err := f.site.SubmitOpinion(f.ctx, models.ContactInput{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"})
	assert.ErrorIs(t, err, services.ErrValidation)

	op, err := f.site.SubmitOpinion(f.ctx, models.ContactInput{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Message: "Love the long reads"})
	require.NoError(t, err)

	_, err = f.site.GetOpinion(f.ctx, models.Actor{}, op.ID)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	items, total, err := f.site.ListOpinions(f.ctx, f.admin, models.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Love the long reads", items[0].Message)

	require.NoError(t, f.site.DeleteOpinion(f.ctx, f.admin, op.ID))
	_, err = f.site.GetOpinion(f.ctx, f.admin, op.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
