package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"newsroom-api/models"
	"newsroom-api/utils"
)

const (
	relatedPostsLimit = 12
	maxTitleLength    = 255
)

// PostService implements the post lifecycle: creation, the role gated
// approval workflow, public reads and bookmarks.
type PostService struct {
	posts     PostRepository
	comments  CommentRepository
	reactions ReactionRepository
	mailer    Mailer
	log       *slog.Logger
	now       func() time.Time
	async     func(func())
}

func NewPostService(posts PostRepository, comments CommentRepository, reactions ReactionRepository, mailer Mailer) *PostService {
	return &PostService{
		posts:     posts,
		comments:  comments,
		reactions: reactions,
		mailer:    mailer,
		log:       slog.Default().With("service", "posts"),
		now:       time.Now,
		async:     func(f func()) { go f() },
	}
}

// Create stores a new post. Reporters always create drafts and may not send
// is_approved; admin posts are approved on creation.
func (s *PostService) Create(ctx context.Context, actor models.Actor, in models.PostInput) (*models.Post, error) {
	if err := Authorize(actor, ActionPostCreate); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	canApprove := Can(actor.Role, ActionPostUpdateFull)
	rejectServerFields(in, verr, canApprove, true)
	if in.Title == nil {
		verr.Add("title", "This field is required.")
	}

	now := s.now()
	post := &models.Post{
		AuthorID:    actor.ID,
		Status:      models.StatusOpen,
		TitleType:   models.TitlePlain,
		Views:       1,
		PublishDate: now,
	}
	applyPostInput(post, in, verr)
	if in.PublishDate != nil {
		post.PublishDate = *in.PublishDate
	}
	if in.IsApproved != nil && canApprove {
		post.IsApproved = *in.IsApproved
	}
	if actor.Role == models.RoleAdmin {
		post.IsApproved = true
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	post.SyncDeletedAt(now)

	categories := categoryIDs(in)
	create := func(slug string) error {
		post.ID = 0
		post.Slug = slug
		return s.posts.Create(ctx, post, categories)
	}
	if err := s.write(ctx, post, !post.CustomSlug, create); err != nil {
		return nil, err
	}

	s.log.Info("post created", "post_id", post.ID, "author_id", actor.ID, "slug", post.Slug, "approved", post.IsApproved)
	return s.posts.GetByID(ctx, post.ID)
}

// UpdateLimited applies a non-privileged update. It only works while the post
// is a draft and rejects server-controlled fields.
func (s *PostService) UpdateLimited(ctx context.Context, actor models.Actor, id uint, in models.PostInput) (*models.Post, error) {
	if err := Authorize(actor, ActionPostUpdateLimited); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.IsApproved {
		return nil, forbidden("You are not allowed to update approved posts")
	}

	verr := &ValidationError{}
	rejectServerFields(in, verr, false, false)
	return s.update(ctx, post, in, verr)
}

// UpdateFull is the editor/admin update. It may flip is_approved; approving a
// draft notifies the author.
func (s *PostService) UpdateFull(ctx context.Context, actor models.Actor, id uint, in models.PostInput) (*models.Post, error) {
	if err := Authorize(actor, ActionPostUpdateFull); err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	rejectServerFields(in, verr, true, false)

	wasApproved := post.IsApproved
	if in.IsApproved != nil {
		post.IsApproved = *in.IsApproved
	}

	updated, err := s.update(ctx, post, in, verr)
	if err != nil {
		return nil, err
	}
	if !wasApproved && updated.IsApproved {
		s.log.Info("post approved", "post_id", updated.ID, "approved_by", actor.ID)
		s.notifyApproved(*updated)
	}
	return updated, nil
}

func (s *PostService) update(ctx context.Context, post *models.Post, in models.PostInput, verr *ValidationError) (*models.Post, error) {
	oldBase := utils.Slugify(post.Title)
	hadCustomSlug := post.CustomSlug

	applyPostInput(post, in, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	post.SyncDeletedAt(s.now())

	regenerate := !post.CustomSlug &&
		(post.Slug == "" || hadCustomSlug || utils.Slugify(post.Title) != oldBase)

	categories := categoryIDs(in)
	save := func(slug string) error {
		post.Slug = slug
		return s.posts.Update(ctx, post, categories)
	}
	if err := s.write(ctx, post, regenerate, save); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

func (s *PostService) write(ctx context.Context, post *models.Post, regenerate bool, write func(slug string) error) error {
	if !regenerate {
		return writeWithFixedSlug(post.Slug, write)
	}
	taken := func(ctx context.Context, slug string) (bool, error) {
		return s.posts.SlugExists(ctx, slug, post.ID)
	}
	return writeWithSlug(ctx, post.Title, "post", taken, write)
}

// Delete removes a post. Admin only.
func (s *PostService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionPostDelete); err != nil {
		return err
	}
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("post deleted", "post_id", id, "deleted_by", actor.ID)
	return nil
}

func (s *PostService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Post, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, id)
}

// List is the staff listing: every post regardless of status or approval.
func (s *PostService) List(ctx context.Context, actor models.Actor, filter models.PostFilter) ([]models.Post, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	filter.PublicOnly = false
	filter.Page = filter.Page.Normalize(models.DefaultPageSize)
	return s.posts.List(ctx, filter)
}

// ListPublic returns open, approved posts as cards for the given reader.
func (s *PostService) ListPublic(ctx context.Context, actor models.Actor, filter models.PostFilter) (*models.FeedResponse, error) {
	filter.PublicOnly = true
	filter.Page = filter.Page.Normalize(models.DefaultPageSize)

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	cards, err := s.Cards(ctx, actor, posts)
	if err != nil {
		return nil, err
	}
	return newFeed(cards, filter.Page, total), nil
}

// Detail is the public read of one post. It bumps the view counter atomically
// and returns a projection; reader specific flags are never stored.
func (s *PostService) Detail(ctx context.Context, actor models.Actor, id uint) (*models.PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.PubliclyVisible() {
		return nil, notFound("post")
	}

	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	post.Views++

	for i := range post.Contents {
		post.Contents[i].HTML = utils.RenderMarkdown(post.Contents[i].Text)
	}

	detail := &models.PostDetail{Post: *post}

	tally, err := s.reactions.Tally(ctx, models.SubjectPost, []uint{post.ID}, actor.ID)
	if err != nil {
		return nil, err
	}
	detail.ReactionCounts = tally[post.ID]

	if detail.CommentCount, err = s.comments.CountForPost(ctx, post.ID); err != nil {
		return nil, err
	}
	if actor.Authenticated() {
		if detail.IsSavedByAuthUser, err = s.posts.IsSaved(ctx, actor.ID, post.ID); err != nil {
			return nil, err
		}
	}
	if detail.Comments, err = buildThread(ctx, s.comments, s.reactions, actor, post.ID); err != nil {
		return nil, err
	}
	if detail.RelatedPosts, err = s.posts.Related(ctx, post, relatedPostsLimit); err != nil {
		return nil, err
	}
	return detail, nil
}

// Cards decorates posts with counts and the reader's flags.
func (s *PostService) Cards(ctx context.Context, actor models.Actor, posts []models.Post) ([]models.PostCard, error) {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	tally, err := s.reactions.Tally(ctx, models.SubjectPost, ids, actor.ID)
	if err != nil {
		return nil, err
	}

	cards := make([]models.PostCard, 0, len(posts))
	for _, p := range posts {
		card := models.PostCard{Post: p, ReactionCounts: tally[p.ID]}
		if card.CommentCount, err = s.comments.CountForPost(ctx, p.ID); err != nil {
			return nil, err
		}
		if actor.Authenticated() {
			if card.IsSavedByAuthUser, err = s.posts.IsSaved(ctx, actor.ID, p.ID); err != nil {
				return nil, err
			}
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ToggleSave bookmarks a public post for the actor, or removes the bookmark.
// It returns the new state.
func (s *PostService) ToggleSave(ctx context.Context, actor models.Actor, postID uint) (bool, error) {
	if err := requireActor(actor); err != nil {
		return false, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if !post.PubliclyVisible() {
		return false, notFound("post")
	}
	saved, err := s.posts.IsSaved(ctx, actor.ID, postID)
	if err != nil {
		return false, err
	}
	if err := s.posts.SetSaved(ctx, actor.ID, postID, !saved); err != nil {
		return false, err
	}
	return !saved, nil
}

func (s *PostService) ListSaved(ctx context.Context, actor models.Actor, page models.Page) (*models.FeedResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	page = page.Normalize(models.DefaultPageSize)
	posts, total, err := s.posts.ListSaved(ctx, actor.ID, page)
	if err != nil {
		return nil, err
	}
	cards, err := s.Cards(ctx, actor, posts)
	if err != nil {
		return nil, err
	}
	return newFeed(cards, page, total), nil
}

func (s *PostService) notifyApproved(post models.Post) {
	if s.mailer == nil {
		return
	}
	author := post.Author
	s.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendPostApproved(ctx, &author, &post); err != nil {
			s.log.Warn("approval email failed", "post_id", post.ID, "error", err)
		}
	})
}

func newFeed(cards []models.PostCard, page models.Page, total int64) *models.FeedResponse {
	totalPages := utils.TotalPages(total, page.Limit)
	return &models.FeedResponse{
		Posts:      cards,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		HasMore:    page.Page < totalPages,
		TotalPages: totalPages,
	}
}

const serverControlled = "This field is server-controlled and cannot be set."

// rejectServerFields flags fields the caller may not send.
func rejectServerFields(in models.PostInput, verr *ValidationError, allowApproval, allowPublishDate bool) {
	if in.IsApproved != nil && !allowApproval {
		verr.Add("is_approved", serverControlled)
	}
	if in.PublishDate != nil && !allowPublishDate {
		verr.Add("publish_date", serverControlled)
	}
	if in.Views != nil {
		verr.Add("views", serverControlled)
	}
	if in.CreatedAt != nil {
		verr.Add("created_at", serverControlled)
	}
	if in.UpdatedAt != nil {
		verr.Add("updated_at", serverControlled)
	}
	if in.DeletedAt != nil {
		verr.Add("deleted_at", serverControlled)
	}
}

// checkLength flags value when it is longer than max characters.
func checkLength(verr *ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		verr.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}

// applyPostInput copies the editable fields present in the payload onto post.
func applyPostInput(post *models.Post, in models.PostInput, verr *ValidationError) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			verr.Add("title", "This field may not be blank.")
		}
		checkLength(verr, "title", title, maxTitleLength)
		post.Title = title
	}
	if in.CustomSlug != nil {
		post.CustomSlug = *in.CustomSlug
	}
	if in.Slug != nil && post.CustomSlug {
		slug := utils.Slugify(*in.Slug)
		if slug == "" {
			verr.Add("slug", "Enter a valid slug consisting of letters, numbers, underscores or hyphens.")
		}
		post.Slug = slug
	}
	if post.CustomSlug && post.Slug == "" {
		verr.Add("slug", "A slug is required when custom_slug is set.")
	}
	if in.Keyword != nil {
		if *in.Keyword == 0 {
			post.KeywordID = nil
		} else {
			id := *in.Keyword
			post.KeywordID = &id
		}
		post.Keyword = nil
	}
	if in.ShortDescription != nil {
		post.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.TitleType != nil {
		if !in.TitleType.Valid() {
			verr.Add("title_type", fmt.Sprintf("%q is not a valid choice.", *in.TitleType))
		}
		post.TitleType = *in.TitleType
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			verr.Add("status", fmt.Sprintf("%q is not a valid choice.", *in.Status))
		}
		post.Status = *in.Status
	}
	if in.TopNews != nil {
		switch {
		case *in.TopNews == 0:
			post.TopNews = nil
		case !in.TopNews.Valid():
			verr.Add("top_news", fmt.Sprintf("%d is not a valid choice.", *in.TopNews))
		default:
			slot := *in.TopNews
			post.TopNews = &slot
		}
	}
	if in.IsAdvertisement != nil {
		post.IsAdvertisement = *in.IsAdvertisement
	}
	if in.SocialMetaTitle != nil {
		checkLength(verr, "social_meta_title", *in.SocialMetaTitle, maxTitleLength)
		post.SocialMetaTitle = *in.SocialMetaTitle
	}
	if in.SocialMetaDescription != nil {
		post.SocialMetaDescription = *in.SocialMetaDescription
	}
	if in.SeoMetaTitle != nil {
		checkLength(verr, "seo_meta_title", *in.SeoMetaTitle, maxTitleLength)
		post.SeoMetaTitle = *in.SeoMetaTitle
	}
	if in.SeoMetaDescription != nil {
		post.SeoMetaDescription = *in.SeoMetaDescription
	}
	if in.SeoMetaKeywords != nil {
		post.SeoMetaKeywords = models.StringSliceType(*in.SeoMetaKeywords).Normalize()
	}
	if in.EndDate != nil {
		end := *in.EndDate
		post.EndDate = &end
	}
	if in.IsEditorsChoice != nil {
		post.IsEditorsChoice = *in.IsEditorsChoice
	}
	if in.IsMultimedia != nil {
		post.IsMultimedia = *in.IsMultimedia
	}
	if in.ShowInHomePage != nil {
		post.ShowInHomePage = *in.ShowInHomePage
	}
}

// categoryIDs returns nil when the payload has no category key, otherwise the
// de-duplicated id list (possibly empty, which clears the set).
func categoryIDs(in models.PostInput) []uint {
	if in.Category == nil {
		return nil
	}
	ids := make([]uint, 0, len(*in.Category))
	seen := make(map[uint]bool, len(*in.Category))
	for _, id := range *in.Category {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
