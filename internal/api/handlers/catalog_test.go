package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Conceptual-Machines/cogito-api/internal/catalog"
	"github.com/Conceptual-Machines/cogito-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstIndexRNG always picks index 0, which rotates the first card to the end.
type firstIndexRNG struct{}

func (firstIndexRNG) Intn(int) int { return 0 }

func setupCatalogRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	h := NewCatalogHandler(cat, firstIndexRNG{})
	router := gin.New()
	router.GET("/questions", h.GetQuestions)
	router.GET("/deck", h.GetDeck)
	router.GET("/card", h.GetCard)
	return router
}

func getDeck(t *testing.T, router *gin.Engine, path string) (int, models.Deck) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var deck models.Deck
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deck))
	}
	return w.Code, deck
}

func TestGetQuestionsByLocalizedTitle(t *testing.T) {
	router := setupCatalogRouter(t)

	code, deck := getDeck(t, router, "/questions?lang=Deutsch&category=Liebe%20und%20Beziehung")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.CategoryLove, deck.Category)
	assert.Equal(t, "Liebe und Beziehung", deck.Title)
	assert.False(t, deck.Shuffled)
	assert.NotEmpty(t, deck.Questions)
}

func TestGetDeckShuffleFlag(t *testing.T) {
	router := setupCatalogRouter(t)

	_, ordered := getDeck(t, router, "/questions?lang=Englisch&category=identity")

	code, shuffled := getDeck(t, router, "/deck?lang=Englisch&category=identity")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, shuffled.Shuffled)
	assert.ElementsMatch(t, ordered.Questions, shuffled.Questions)
	assert.Equal(t, ordered.Questions[0], shuffled.Questions[len(shuffled.Questions)-1])

	code, unshuffled := getDeck(t, router, "/deck?lang=Englisch&category=identity&shuffle=false")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, ordered.Questions, unshuffled.Questions)

	code, _ = getDeck(t, router, "/deck?lang=Englisch&category=identity&shuffle=maybe")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetQuestionsMissingCategory(t *testing.T) {
	router := setupCatalogRouter(t)

	code, _ := getDeck(t, router, "/questions?lang=Englisch")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5.00s", formatUptime(5e9))
	assert.Equal(t, "2m3.00s", formatUptime(123e9))
	assert.Equal(t, "1h0m1.00s", formatUptime(3601e9))
}

func TestGetCardSteppingStopsAtLastCard(t *testing.T) {
	router := setupCatalogRouter(t)
	_, ordered := getDeck(t, router, "/questions?lang=Englisch&category=friendship")
	require.NotEmpty(t, ordered.Questions)
	last := len(ordered.Questions) - 1

	getCard := func(path string) (int, models.Card) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		var card models.Card
		if w.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
		}
		return w.Code, card
	}

	code, card := getCard("/card?lang=Englisch&category=friendship")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, card.Index)
	assert.Equal(t, ordered.Questions[0], card.Question)
	assert.Equal(t, len(ordered.Questions), card.Total)

	code, card = getCard("/card?lang=Englisch&category=friendship&index=" + strconv.Itoa(last))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, last, card.Next)
	assert.True(t, card.Last)

	code, _ = getCard("/card?lang=Englisch&category=friendship&index=" + strconv.Itoa(last+1))
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = getCard("/card?lang=Englisch&category=friendship&index=-1")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = getCard("/card?lang=Englisch&category=sports")
	assert.Equal(t, http.StatusNotFound, code)
}
