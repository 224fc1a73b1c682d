package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rfpdesk/internal/engine"
	"rfpdesk/internal/table"
)

// Parse detects questionnaire structure in an uploaded workbook.
// POST /api/parse
// Form: file (xlsx), sheets (optional comma-separated filter),
// batches (optional "true" to include planned batches).
func (h *Handler) Parse(c *gin.Context) {
	uploadPath, cleanup, err := h.saveUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer cleanup()

	opts := engine.ParseOptions{
		IncludeBatches: c.PostForm("batches") == "true",
	}
	if sheets := strings.TrimSpace(c.PostForm("sheets")); sheets != "" {
		for _, s := range strings.Split(sheets, ",") {
			if s = strings.TrimSpace(s); s != "" {
				opts.SheetFilter = append(opts.SheetFilter, s)
			}
		}
	}

	report, err := h.engine.Parse(uploadPath, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, table.ErrUnreadableDocument) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	// Report the caller's file name, not the temp upload's.
	report.File = originalFileName(c)
	c.JSON(http.StatusOK, report)
}

// saveUpload stores the multipart "file" part under uploads/ with a
// uuid prefix, so concurrent requests never collide.
func (h *Handler) saveUpload(c *gin.Context) (string, func(), error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("missing file upload: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String()[:8], filepath.Base(fileHeader.Filename))
	uploadPath := filepath.Join(h.dataDir, "uploads", name)
	if err := c.SaveUploadedFile(fileHeader, uploadPath); err != nil {
		return "", nil, fmt.Errorf("failed to save upload: %w", err)
	}

	return uploadPath, func() { _ = os.Remove(uploadPath) }, nil
}

func originalFileName(c *gin.Context) string {
	if fh, err := c.FormFile("file"); err == nil {
		return filepath.Base(fh.Filename)
	}
	return ""
}
