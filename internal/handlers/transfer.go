package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"skillswap/internal/apperr"
	"skillswap/internal/board"
	"skillswap/internal/middleware"
	"skillswap/internal/transfer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TransferHandler struct {
	board    *board.Board
	maxBytes int64
	logger   *zap.Logger
}

func NewTransferHandler(b *board.Board, maxBytes int64, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{board: b, maxBytes: maxBytes, logger: logger}
}

// Export downloads the board as skills_export.json.
func (h *TransferHandler) Export(c *gin.Context) {
	data, err := transfer.Export(h.board.List())
	if err != nil {
		JSONError(c, apperr.Internal("Failed to export skills", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, transfer.ExportFilename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Import replaces the board with an uploaded export file. Nothing changes
// unless the whole file parses.
func (h *TransferHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// No file chosen.
		c.Redirect(http.StatusFound, "/")
		return
	}
	if fileHeader.Size > h.maxBytes {
		flashAndRedirect(c, apperr.Validation("File is too large to import"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		flashAndRedirect(c, apperr.Internal("Failed to read file", err))
		return
	}
	defer f.Close()

	n, err := h.replace(c, f)
	if err != nil {
		flashAndRedirect(c, err)
		return
	}
	middleware.AddSuccess(c, fmt.Sprintf("%d skills imported successfully!", n))
	c.Redirect(http.StatusFound, "/")
}

// APIImport takes the export document as the request body.
func (h *TransferHandler) APIImport(c *gin.Context) {
	n, err := h.replace(c, http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		err = apperr.Validation("File is too large to import")
	}
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}

func (h *TransferHandler) replace(c *gin.Context, r io.Reader) (int, error) {
	postings, err := transfer.Import(r)
	if err != nil {
		h.logger.Info("import rejected", zap.String("kind", string(apperr.KindOf(err))), zap.Error(err))
		return 0, err
	}
	if err := h.board.ReplaceAll(c.Request.Context(), postings); err != nil {
		return 0, err
	}
	return len(postings), nil
}
