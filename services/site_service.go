package services

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"newsroom-api/models"
	"newsroom-api/utils"
)

// SiteService owns the site-wide settings row, the social media links and
// the messages readers send through the contact and opinion forms.
type SiteService struct {
	settings Store[models.SiteSettings]
	social   Store[models.SocialMedia]
	contacts Store[models.ContactMessage]
	opinions Store[models.Opinion]
	now      func() time.Time

	mu sync.Mutex
}

func NewSiteService(
	settings Store[models.SiteSettings],
	social Store[models.SocialMedia],
	contacts Store[models.ContactMessage],
	opinions Store[models.Opinion],
) *SiteService {
	return &SiteService{settings: settings, social: social, contacts: contacts, opinions: opinions, now: time.Now}
}

// Settings returns the settings row, or empty settings before the first save.
func (s *SiteService) Settings(ctx context.Context) (*models.SiteSettings, error) {
	rows, err := s.settings.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.SiteSettings{}, nil
	}
	return &rows[0], nil
}

// UpdateSettings applies a partial update, creating the row on first use.
func (s *SiteService) UpdateSettings(ctx context.Context, actor models.Actor, in models.SiteSettingsInput) (*models.SiteSettings, error) {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return nil, err
	}
	if in.Logo != nil && *in.Logo != "" && !utils.IsValidURL(strings.TrimSpace(*in.Logo)) {
		return nil, NewValidationError("logo", "Enter a valid URL.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	for dst, src := range map[*string]*string{
		&current.Copyright:             in.Copyright,
		&current.Logo:                  in.Logo,
		&current.FooterText:            in.FooterText,
		&current.FooterSocialMediaText: in.FooterSocialMediaText,
		&current.SearchPlaceholder:     in.SearchPlaceholder,
		&current.AuthorWidgetTitle:     in.AuthorWidgetTitle,
		&current.SliderVideoTitle:      in.SliderVideoTitle,
		&current.SliderButtonTitle:     in.SliderButtonTitle,
		&current.ItemNowPlayingText:    in.ItemNowPlayingText,
		&current.TermsAndConditions:    in.TermsAndConditions,
	} {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	current.UpdatedAt = s.now()
	if current.ID == 0 {
		err = s.settings.Create(ctx, current)
	} else {
		err = s.settings.Save(ctx, current)
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

// SocialLinks lists the social media links, optionally for one position.
func (s *SiteService) SocialLinks(ctx context.Context, position models.SocialPosition) ([]models.SocialMedia, error) {
	all, err := s.social.All(ctx)
	if err != nil {
		return nil, err
	}
	position = models.SocialPosition(strings.ToLower(strings.TrimSpace(string(position))))
	if position == "" {
		return all, nil
	}
	if !position.Valid() {
		return nil, NewValidationError("position", `"`+string(position)+`" is not a valid choice.`)
	}
	out := make([]models.SocialMedia, 0, len(all))
	for _, m := range all {
		if m.Position == position {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *SiteService) CreateSocial(ctx context.Context, actor models.Actor, in models.SocialMediaInput) (*models.SocialMedia, error) {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return nil, err
	}
	m := &models.SocialMedia{}
	if err := applySocialInput(m, in); err != nil {
		return nil, err
	}
	if err := s.social.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SiteService) UpdateSocial(ctx context.Context, actor models.Actor, id uint, in models.SocialMediaInput) (*models.SocialMedia, error) {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return nil, err
	}
	m, err := s.social.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySocialInput(m, in); err != nil {
		return nil, err
	}
	if err := s.social.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SiteService) DeleteSocial(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return err
	}
	return s.social.Delete(ctx, id)
}

func (s *SiteService) GetSocial(ctx context.Context, actor models.Actor, id uint) (*models.SocialMedia, error) {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return nil, err
	}
	return s.social.Get(ctx, id)
}

func applySocialInput(m *models.SocialMedia, in models.SocialMediaInput) error {
	verr := &ValidationError{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "This field may not be blank.")
	}
	link := strings.TrimSpace(in.Link)
	if !utils.IsValidURL(link) {
		verr.Add("link", "Enter a valid URL.")
	}
	icon := strings.TrimSpace(in.Icon)
	if icon != "" && !utils.IsValidURL(icon) {
		verr.Add("icon", "Enter a valid URL.")
	}
	position := models.SocialPosition(strings.ToLower(strings.TrimSpace(string(in.Position))))
	if !position.Valid() {
		verr.Add("position", `"`+string(in.Position)+`" is not a valid choice.`)
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	m.Title = title
	m.Link = link
	m.Icon = icon
	m.Position = position
	return nil
}

// SubmitContact stores a contact form message from any visitor.
func (s *SiteService) SubmitContact(ctx context.Context, in models.ContactInput) (*models.ContactMessage, error) {
	sender, err := checkSender(in)
	if err != nil {
		return nil, err
	}
	msg := &models.ContactMessage{
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
		Email:     sender.Email,
		Message:   sender.Message,
		SendDate:  s.now(),
	}
	if in.PhoneNumber != nil {
		if phone := strings.TrimSpace(*in.PhoneNumber); phone != "" {
			msg.PhoneNumber = &phone
		}
	}
	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// SubmitOpinion stores an opinion about the site from any visitor.
func (s *SiteService) SubmitOpinion(ctx context.Context, in models.ContactInput) (*models.Opinion, error) {
	sender, err := checkSender(in)
	if err != nil {
		return nil, err
	}
	op := &models.Opinion{
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
		Email:     sender.Email,
		Message:   sender.Message,
		SendDate:  s.now(),
	}
	if err := s.opinions.Create(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *SiteService) ListContacts(ctx context.Context, actor models.Actor, page models.Page) ([]models.ContactMessage, int64, error) {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return nil, 0, err
	}
	return s.contacts.List(ctx, page.Normalize(models.DefaultPageSize))
}

func (s *SiteService) GetContact(ctx context.Context, actor models.Actor, id uint) (*models.ContactMessage, error) {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return nil, err
	}
	return s.contacts.Get(ctx, id)
}

func (s *SiteService) ListOpinions(ctx context.Context, actor models.Actor, page models.Page) ([]models.Opinion, int64, error) {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return nil, 0, err
	}
	return s.opinions.List(ctx, page.Normalize(models.DefaultPageSize))
}

func (s *SiteService) GetOpinion(ctx context.Context, actor models.Actor, id uint) (*models.Opinion, error) {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return nil, err
	}
	return s.opinions.Get(ctx, id)
}

func (s *SiteService) DeleteOpinion(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionSiteManage); err != nil {
		return err
	}
	return s.opinions.Delete(ctx, id)
}

// checkSender validates and normalises the fields shared by both forms.
// Names may hold letters and spaces only; markup is stripped from the message.
func checkSender(in models.ContactInput) (models.ContactInput, error) {
	verr := &ValidationError{}
	out := models.ContactInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Message:   utils.SanitizeComment(in.Message),
	}
	checkName(verr, "first_name", out.FirstName)
	checkName(verr, "last_name", out.LastName)
	if !utils.IsValidEmail(out.Email) {
		verr.Add("email", "Enter a valid email address.")
	} else {
		at := strings.LastIndex(out.Email, "@")
		out.Email = out.Email[:at] + strings.ToLower(out.Email[at:])
	}
	if out.Message == "" {
		verr.Add("message", "This field may not be blank.")
	}
	return out, verr.OrNil()
}

func checkName(verr *ValidationError, field, name string) {
	if name == "" {
		verr.Add(field, "This field may not be blank.")
		return
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			verr.Add(field, "Enter a valid name.")
			return
		}
	}
}
