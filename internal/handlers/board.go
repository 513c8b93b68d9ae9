package handlers

import (
	"net/http"

	"skillswap/internal/board"
	"skillswap/internal/models"
	"skillswap/internal/search"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BoardHandler struct {
	board  *board.Board
	cache  *search.Cache
	logger *zap.Logger
}

func NewBoardHandler(b *board.Board, cache *search.Cache, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{board: b, cache: cache, logger: logger}
}

type view struct {
	postings []models.Posting
	visible  []string
	revision uint64
	query    string
	category string
}

// filtered applies the q and category query parameters to the board.
func (h *BoardHandler) filtered(c *gin.Context) view {
	v := view{
		query:    c.Query("q"),
		category: c.DefaultQuery("category", models.CategoryAll),
	}
	v.postings, v.revision = h.board.Snapshot()
	v.visible = h.cache.Visible(v.revision, v.postings, v.query, v.category)
	return v
}

// List renders the board page with the current search applied.
func (h *BoardHandler) List(c *gin.Context) {
	v := h.filtered(c)
	postings, visible, query, category := v.postings, v.visible, v.query, v.category

	shown := search.Set(visible)
	cards := make([]models.Posting, 0, len(visible))
	for _, p := range postings {
		if shown[p.ID] {
			cards = append(cards, p)
		}
	}

	Render(c, http.StatusOK, "board/list.html", gin.H{
		"Title":      "Skill Swap",
		"Postings":   cards,
		"Total":      len(postings),
		"Query":      query,
		"Category":   category,
		"Categories": models.Categories(),
		"NoMatches":  search.NoMatches(visible, query),
	})
}

// Create handles the posting form.
func (h *BoardHandler) Create(c *gin.Context) {
	var in board.Input
	if err := c.ShouldBind(&in); err != nil {
		flashAndRedirect(c, err)
		return
	}

	_, err := h.board.Add(c.Request.Context(), in)
	if err != nil {
		h.logger.Debug("skill rejected", zap.Error(err))
	}
	flashAndRedirect(c, err)
}

// Delete removes the posting named in the path.
func (h *BoardHandler) Delete(c *gin.Context) {
	err := h.board.Remove(c.Request.Context(), c.Param("id"))
	flashAndRedirect(c, err)
}

// APIList returns every posting plus the ids the search leaves visible.
func (h *BoardHandler) APIList(c *gin.Context) {
	v := h.filtered(c)
	c.JSON(http.StatusOK, gin.H{
		"skills":    v.postings,
		"visible":   v.visible,
		"noMatches": search.NoMatches(v.visible, v.query),
		"revision":  v.revision,
	})
}

func (h *BoardHandler) APIGet(c *gin.Context) {
	p, err := h.board.Get(c.Param("id"))
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *BoardHandler) APICreate(c *gin.Context) {
	var in board.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "MALFORMED_JSON", "message": err.Error()})
		return
	}

	p, err := h.board.Add(c.Request.Context(), in)
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *BoardHandler) APIDelete(c *gin.Context) {
	if err := h.board.Remove(c.Request.Context(), c.Param("id")); err != nil {
		JSONError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
