package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FarhanAlam-Official/GharSaathi/internal/properties"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
)

// presignedURLLifetime bounds how long an uploaded object's URL stays valid.
const presignedURLLifetime = 7 * 24 * time.Hour

// handleUpload stores one media file for a listing and attaches it to the
// property record. Requires a configured media store.
func (s *Server) handleUpload(c *gin.Context) {
	if s.media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "File storage is not configured"})
		return
	}

	propertyID, err := strconv.ParseInt(c.PostForm("propertyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "propertyId is required"})
		return
	}
	p, err := s.props.GetByID(c.Request.Context(), propertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load property"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read file"})
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	key, err := s.media.Upload(c.Request.Context(), propertyID, fh.Filename, f, fh.Size, contentType)
	if err != nil {
		logger.Errorf("server: media upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}

	fileURL, err := s.media.PresignedURL(c.Request.Context(), key, presignedURLLifetime)
	if err != nil {
		logger.Errorf("server: presigned url failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}

	img := properties.PropertyImage{
		Filename:   fh.Filename,
		FileURL:    fileURL,
		MediaType:  contentType,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.props.AddImage(c.Request.Context(), propertyID, img); err != nil {
		logger.Errorf("server: attaching image failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"filename": fh.Filename, "fileUrl": fileURL})
}
