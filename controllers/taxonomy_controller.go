package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/services"
	"newsroom-api/utils"
)

// TaxonomyController serves categories and post keywords.
type TaxonomyController struct {
	taxonomy *services.TaxonomyService
}

func NewTaxonomyController(taxonomy *services.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{taxonomy: taxonomy}
}

// GetCategoryTree is the public navigation tree.
func (tc *TaxonomyController) GetCategoryTree(c *gin.Context) {
	tree, err := tc.taxonomy.CategoryTree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (tc *TaxonomyController) ListCategories(c *gin.Context) {
	page := middleware.GetPage(c)
	categories, total, err := tc.taxonomy.ListCategories(c.Request.Context(), middleware.CurrentActor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, categories, page, total)
}

func (tc *TaxonomyController) CreateCategory(c *gin.Context) {
	var req models.CategoryInput
	if !bindJSON(c, &req) {
		return
	}
	category, err := tc.taxonomy.CreateCategory(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (tc *TaxonomyController) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	category, err := tc.taxonomy.GetCategory(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (tc *TaxonomyController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.CategoryInput
	if !bindJSON(c, &req) {
		return
	}
	category, err := tc.taxonomy.UpdateCategory(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (tc *TaxonomyController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := tc.taxonomy.DeleteCategory(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Category deleted successfully", nil)
}

func (tc *TaxonomyController) ListKeywords(c *gin.Context) {
	page := middleware.GetPage(c)
	keywords, total, err := tc.taxonomy.ListKeywords(c.Request.Context(), middleware.CurrentActor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPage(c, keywords, page, total)
}

func (tc *TaxonomyController) CreateKeyword(c *gin.Context) {
	var req models.KeywordInput
	if !bindJSON(c, &req) {
		return
	}
	keyword, err := tc.taxonomy.CreateKeyword(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, keyword)
}

func (tc *TaxonomyController) GetKeyword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	keyword, err := tc.taxonomy.GetKeyword(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, keyword)
}

func (tc *TaxonomyController) UpdateKeyword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.KeywordInput
	if !bindJSON(c, &req) {
		return
	}
	keyword, err := tc.taxonomy.UpdateKeyword(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, keyword)
}

func (tc *TaxonomyController) DeleteKeyword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := tc.taxonomy.DeleteKeyword(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Keyword deleted successfully", nil)
}
