package services

import (
	"context"
	"strings"

	"newsroom-api/models"
	"newsroom-api/utils"
)

// PhotoService manages the photo library referenced by content blocks.
type PhotoService struct {
	photos Store[models.Photo]
}

func NewPhotoService(photos Store[models.Photo]) *PhotoService {
	return &PhotoService{photos: photos}
}

func (s *PhotoService) Create(ctx context.Context, actor models.Actor, in models.PhotoInput) (*models.Photo, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	photo := &models.Photo{}
	if err := applyPhotoInput(photo, in); err != nil {
		return nil, err
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) Update(ctx context.Context, actor models.Actor, id uint, in models.PhotoInput) (*models.Photo, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	photo, err := s.photos.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPhotoInput(photo, in); err != nil {
		return nil, err
	}
	if err := s.photos.Save(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return err
	}
	return s.photos.Delete(ctx, id)
}

func (s *PhotoService) Get(ctx context.Context, actor models.Actor, id uint) (*models.Photo, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.photos.Get(ctx, id)
}

func (s *PhotoService) List(ctx context.Context, actor models.Actor, page models.Page) ([]models.Photo, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	return s.photos.List(ctx, page.Normalize(models.DefaultPageSize))
}

func applyPhotoInput(photo *models.Photo, in models.PhotoInput) error {
	verr := &ValidationError{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "This field may not be blank.")
	}
	url := strings.TrimSpace(in.URL)
	if !utils.IsValidURL(url) {
		verr.Add("url", "Enter a valid URL.")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	photo.Title = title
	photo.URL = url
	return nil
}

// Browse lists the photo library for anonymous readers.
func (s *PhotoService) Browse(ctx context.Context, page models.Page) ([]models.Photo, int64, error) {
	return s.photos.List(ctx, page.Normalize(models.DefaultPageSize))
}

// Show returns one library photo to anonymous readers.
func (s *PhotoService) Show(ctx context.Context, id uint) (*models.Photo, error) {
	return s.photos.Get(ctx, id)
}
