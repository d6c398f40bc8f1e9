package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gamescorehub/backend/internal/uploader"
	"github.com/gamescorehub/backend/pkg/logger"
)

type UploadHandler struct {
	uploader uploader.ImageUploader
}

func NewUploadHandler(up uploader.ImageUploader) *UploadHandler {
	return &UploadHandler{uploader: up}
}

// UploadImage stores a multipart image at the object-storage provider
// and returns its public URL for use as a game image.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("imageData")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "imageData file is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not read uploaded file",
		})
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), file, uploader.Folder)
	if err != nil {
		logger.Log.Error("Image upload failed",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error uploading the image",
		})
		return
	}

	logger.Log.Info("Image uploaded",
		zap.String("filename", fileHeader.Filename),
		zap.String("url", url),
	)

	c.JSON(http.StatusOK, gin.H{
		"cloudinary_url": url,
	})
}
