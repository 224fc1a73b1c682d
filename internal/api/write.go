package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rfpdesk/internal/model"
	"rfpdesk/internal/table"
)

// WriteAnswers applies an answer set to an uploaded workbook and hands
// back the application report plus a download token for the new file.
// POST /api/write
// Form: file (xlsx), answers (JSON, AnswerSet shape).
func (h *Handler) WriteAnswers(c *gin.Context) {
	uploadPath, cleanup, err := h.saveUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer cleanup()

	answersJSON := c.PostForm("answers")
	if answersJSON == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing answers JSON"})
		return
	}

	var set model.AnswerSet
	if err := json.Unmarshal([]byte(answersJSON), &set); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid answers JSON: " + err.Error()})
		return
	}

	// The answered copy keeps the caller's file name plus suffix, and
	// lives under exports/ until downloaded.
	original := originalFileName(c)
	ext := filepath.Ext(original)
	outputName := strings.TrimSuffix(original, ext) + "_answered" + ext
	outputPath := filepath.Join(h.dataDir, "exports", outputName)

	report, err := h.engine.WriteAnswers(uploadPath, set, outputPath)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, table.ErrUnreadableDocument) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	token := h.downloads.put(outputPath, outputName, 30*time.Minute)
	c.JSON(http.StatusOK, gin.H{
		"output_file":    outputName,
		"download_token": token,
		"report":         report,
	})
}

// Download streams a previously generated document.
// GET /api/download/:token
func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown or expired download token"})
		return
	}
	c.FileAttachment(item.filePath, item.fileName)
}
