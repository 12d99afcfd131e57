package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/cogito-api/internal/catalog"
	"github.com/Conceptual-Machines/cogito-api/internal/models"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
	rng     catalog.RNG
}

// NewCatalogHandler creates a handler over the static question catalog.
// rng drives deck shuffling; nil uses the default source.
func NewCatalogHandler(c *catalog.Catalog, rng catalog.RNG) *CatalogHandler {
	if rng == nil {
		rng = catalog.DefaultRNG
	}
	return &CatalogHandler{catalog: c, rng: rng}
}

// GetLanguages lists the supported languages in display order
func (h *CatalogHandler) GetLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": h.catalog.Languages()})
}

// GetCategories lists the categories of ?lang= with localized titles
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	lang, err := h.catalog.ResolveLanguage(c.DefaultQuery("lang", catalog.DefaultLanguage))
	if err != nil {
		h.handleError(c, err)
		return
	}

	categories, err := h.catalog.Categories(lang.Key)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language":   lang.Key,
		"categories": categories,
	})
}

// GetQuestions returns the questions of ?lang=&category= in stable order
func (h *CatalogHandler) GetQuestions(c *gin.Context) {
	h.writeDeck(c, false)
}

// GetDeck returns a deck for ?lang=&category=, shuffled unless shuffle=false
func (h *CatalogHandler) GetDeck(c *gin.Context) {
	shuffle, err := strconv.ParseBool(c.DefaultQuery("shuffle", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "shuffle must be true or false"})
		return
	}
	h.writeDeck(c, shuffle)
}

// GetCard returns the card at ?index= of the ordered deck for ?lang=&category=,
// together with the index the UI should step to next
func (h *CatalogHandler) GetCard(c *gin.Context) {
	index, err := strconv.Atoi(c.DefaultQuery("index", "0"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "index must be a non-negative integer"})
		return
	}

	lang := c.DefaultQuery("lang", catalog.DefaultLanguage)
	key, err := h.catalog.ResolveCategory(lang, c.Query("category"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	questions, err := h.catalog.Questions(lang, key)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if index >= len(questions) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "card index out of range"})
		return
	}

	c.JSON(http.StatusOK, models.Card{
		Index:    index,
		Next:     catalog.Next(index, len(questions)),
		Total:    len(questions),
		Last:     index == len(questions)-1,
		Question: questions[index],
	})
}

func (h *CatalogHandler) writeDeck(c *gin.Context, shuffle bool) {
	lang := c.DefaultQuery("lang", catalog.DefaultLanguage)

	key, err := h.catalog.ResolveCategory(lang, c.Query("category"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	deck, err := h.catalog.Deck(lang, key, shuffle, h.rng)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, deck)
}

func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrLanguageNotFound) || errors.Is(err, catalog.ErrCategoryNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
}
