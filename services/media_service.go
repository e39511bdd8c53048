package services

import (
	"context"
	"errors"
	"strings"

	"newsroom-api/models"
	"newsroom-api/utils"
)

// VideoService manages the video list shown in the site slider.
type VideoService struct {
	videos Store[models.Video]
}

func NewVideoService(videos Store[models.Video]) *VideoService {
	return &VideoService{videos: videos}
}

func (s *VideoService) Browse(ctx context.Context, page models.Page) ([]models.Video, int64, error) {
	return s.videos.List(ctx, page.Normalize(models.DefaultPageSize))
}

func (s *VideoService) Show(ctx context.Context, id uint) (*models.Video, error) {
	return s.videos.Get(ctx, id)
}

func (s *VideoService) Create(ctx context.Context, actor models.Actor, in models.VideoInput) (*models.Video, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	video := &models.Video{}
	if err := applyVideoInput(video, in); err != nil {
		return nil, err
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) Update(ctx context.Context, actor models.Actor, id uint, in models.VideoInput) (*models.Video, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	video, err := s.videos.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyVideoInput(video, in); err != nil {
		return nil, err
	}
	if err := s.videos.Save(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return err
	}
	return s.videos.Delete(ctx, id)
}

func (s *VideoService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Video, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.videos.Get(ctx, id)
}

func (s *VideoService) List(ctx context.Context, actor models.Actor, page models.Page) ([]models.Video, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	return s.Browse(ctx, page)
}

func applyVideoInput(video *models.Video, in models.VideoInput) error {
	verr := &ValidationError{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "This field may not be blank.")
	}
	checkLength(verr, "title", title, maxTitleLength)
	url := strings.TrimSpace(in.URL)
	if !utils.IsValidURL(url) {
		verr.Add("url", "Enter a valid URL.")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	video.Title = title
	video.URL = url
	video.Text = strings.TrimSpace(in.Text)
	return nil
}

// GalleryService manages captioned gallery entries. Each entry points at a
// library photo and goes away with it.
type GalleryService struct {
	galleries Store[models.Gallery]
	photos    Store[models.Photo]
}

func NewGalleryService(galleries Store[models.Gallery], photos Store[models.Photo]) *GalleryService {
	return &GalleryService{galleries: galleries, photos: photos}
}

func (s *GalleryService) Create(ctx context.Context, actor models.Actor, in models.GalleryInput) (*models.Gallery, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	g := &models.Gallery{}
	if err := s.apply(ctx, g, in); err != nil {
		return nil, err
	}
	if err := s.galleries.Create(ctx, g); err != nil {
		return nil, err
	}
	return s.galleries.Get(ctx, g.ID)
}

func (s *GalleryService) Update(ctx context.Context, actor models.Actor, id uint, in models.GalleryInput) (*models.Gallery, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	g, err := s.galleries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, g, in); err != nil {
		return nil, err
	}
	g.Photo = nil
	if err := s.galleries.Save(ctx, g); err != nil {
		return nil, err
	}
	return s.galleries.Get(ctx, id)
}

func (s *GalleryService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return err
	}
	return s.galleries.Delete(ctx, id)
}

func (s *GalleryService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Gallery, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.galleries.Get(ctx, id)
}

func (s *GalleryService) List(ctx context.Context, actor models.Actor, page models.Page) ([]models.Gallery, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	return s.galleries.List(ctx, page.Normalize(models.DefaultPageSize))
}

func (s *GalleryService) apply(ctx context.Context, g *models.Gallery, in models.GalleryInput) error {
	verr := &ValidationError{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "This field may not be blank.")
	}
	checkLength(verr, "title", title, maxTitleLength)
	if _, err := s.photos.Get(ctx, in.PhotoID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		verr.Add("photo", "Invalid pk - object does not exist.")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	g.Title = title
	g.PhotoID = in.PhotoID
	g.Description = strings.TrimSpace(in.Description)
	return nil
}
