package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"newsroom-api/models"
	"newsroom-api/utils"
)

const categoryTreeKey = "categories:tree"

// TaxonomyService manages categories and post keywords.
type TaxonomyService struct {
	categories Store[models.Category]
	keywords   Store[models.PostIdentifier]
	cache      *utils.Cache[[]models.CategoryNode]
}

// NewTaxonomyService builds the service; cache may be nil to disable caching.
func NewTaxonomyService(categories Store[models.Category], keywords Store[models.PostIdentifier], cache *utils.Cache[[]models.CategoryNode]) *TaxonomyService {
	return &TaxonomyService{categories: categories, keywords: keywords, cache: cache}
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, actor models.Actor, in models.CategoryInput) (*models.Category, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	category := &models.Category{}
	if err := s.applyCategory(ctx, category, in); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate()
	return category, nil
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, actor models.Actor, id uint, in models.CategoryInput) (*models.Category, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	category, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ParentID != nil && *in.ParentID == id {
		return nil, NewValidationError("parent", "A category cannot be its own parent.")
	}
	if err := s.applyCategory(ctx, category, in); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate()
	return category, nil
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *TaxonomyService) GetCategory(ctx context.Context, actor models.Actor, id uint) (*models.Category, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.categories.Get(ctx, id)
}

func (s *TaxonomyService) ListCategories(ctx context.Context, actor models.Actor, page models.Page) ([]models.Category, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	return s.categories.List(ctx, page.Normalize(models.DefaultPageSize))
}

// CategoryTree returns top-level categories with their children, ordered by
// (ordering, title). The result is cached until a category changes.
func (s *TaxonomyService) CategoryTree(ctx context.Context) ([]models.CategoryNode, error) {
	if s.cache != nil {
		if tree, ok := s.cache.Get(categoryTreeKey); ok {
			return tree, nil
		}
	}

	all, err := s.categories.All(ctx)
	if err != nil {
		return nil, err
	}
	tree := buildCategoryTree(all)

	if s.cache != nil {
		s.cache.Set(categoryTreeKey, tree)
	}
	return tree, nil
}

func buildCategoryTree(all []models.Category) []models.CategoryNode {
	live := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.DeletedAt == nil {
			live = append(live, c)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].Ordering != live[j].Ordering {
			return live[i].Ordering < live[j].Ordering
		}
		return live[i].Title < live[j].Title
	})

	children := make(map[uint][]models.Category)
	var roots []models.Category
	for _, c := range live {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	tree := make([]models.CategoryNode, 0, len(roots))
	for _, root := range roots {
		kids := children[root.ID]
		if kids == nil {
			kids = []models.Category{}
		}
		tree = append(tree, models.CategoryNode{Category: root, Children: kids})
	}
	return tree
}

func (s *TaxonomyService) applyCategory(ctx context.Context, category *models.Category, in models.CategoryInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return NewValidationError("title", "This field may not be blank.")
	}
	if in.ParentID != nil && *in.ParentID != 0 {
		if _, err := s.categories.Get(ctx, *in.ParentID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewValidationError("parent", "Invalid pk - object does not exist.")
			}
			return err
		}
		parent := *in.ParentID
		category.ParentID = &parent
	} else {
		category.ParentID = nil
	}
	category.Title = title
	category.URL = strings.TrimSpace(in.URL)
	category.Ordering = in.Ordering
	return nil
}

func (s *TaxonomyService) invalidate() {
	if s.cache != nil {
		s.cache.Delete(categoryTreeKey)
	}
}

func (s *TaxonomyService) CreateKeyword(ctx context.Context, actor models.Actor, in models.KeywordInput) (*models.PostIdentifier, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewValidationError("title", "This field may not be blank.")
	}
	keyword := &models.PostIdentifier{Title: title}
	if err := s.keywords.Create(ctx, keyword); err != nil {
		return nil, err
	}
	return keyword, nil
}

func (s *TaxonomyService) UpdateKeyword(ctx context.Context, actor models.Actor, id uint, in models.KeywordInput) (*models.PostIdentifier, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	keyword, err := s.keywords.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewValidationError("title", "This field may not be blank.")
	}
	keyword.Title = title
	if err := s.keywords.Save(ctx, keyword); err != nil {
		return nil, err
	}
	return keyword, nil
}

func (s *TaxonomyService) DeleteKeyword(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return err
	}
	return s.keywords.Delete(ctx, id)
}

func (s *TaxonomyService) GetKeyword(ctx context.Context, actor models.Actor, id uint) (*models.PostIdentifier, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, err
	}
	return s.keywords.Get(ctx, id)
}

func (s *TaxonomyService) ListKeywords(ctx context.Context, actor models.Actor, page models.Page) ([]models.PostIdentifier, int64, error) {
	if err := Authorize(actor, ActionPrivateAccess); err != nil {
		return nil, 0, err
	}
	return s.keywords.List(ctx, page.Normalize(models.DefaultPageSize))
}
