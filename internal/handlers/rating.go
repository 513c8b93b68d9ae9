package handlers

import (
	"net/http"
	"strconv"

	"skillswap/internal/apperr"
	"skillswap/internal/board"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	board *board.Board
}

func NewRatingHandler(b *board.Board) *RatingHandler {
	return &RatingHandler{board: b}
}

// Rate handles a star click and returns the refreshed rating fragment.
// Every click counts as a vote.
func (h *RatingHandler) Rate(c *gin.Context) {
	value, err := strconv.Atoi(c.Param("value"))
	if err != nil {
		c.String(http.StatusBadRequest, apperr.MessageOf(apperr.OutOfRange("Rating must be a number")))
		return
	}

	p, err := h.board.SetRating(c.Request.Context(), c.Param("id"), value)
	if err != nil {
		c.Error(err)
		c.String(statusOf(err), apperr.MessageOf(err))
		return
	}

	c.HTML(http.StatusOK, "board/rating.html", p)
}

type rateRequest struct {
	Value int `json:"value"`
}

func (h *RatingHandler) APIRate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "MALFORMED_JSON", "message": err.Error()})
		return
	}

	p, err := h.board.SetRating(c.Request.Context(), c.Param("id"), req.Value)
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
