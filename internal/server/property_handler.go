package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FarhanAlam-Official/GharSaathi/internal/properties"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/middleware"
)

func (s *Server) handleListProperties(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(properties.DefaultPageSize)))
	sortBy := c.Query("sortBy")
	sortDirection := c.Query("sortDirection")

	res, err := s.props.List(c.Request.Context(), page, size, sortBy, sortDirection)
	if err != nil {
		logger.Errorf("server: property listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load properties"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleGetProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property id"})
		return
	}
	p, err := s.props.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("server: property lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load property"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleSearchProperties(c *gin.Context) {
	var criteria properties.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search criteria"})
		return
	}
	if criteria.Size <= 0 {
		criteria.Size = properties.DefaultPageSize
	}
	res, err := s.props.Search(c.Request.Context(), criteria)
	if err != nil {
		logger.Errorf("server: property search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

type createPropertyRequest struct {
	Title            string                  `json:"title" binding:"required"`
	Description      string                  `json:"description"`
	PropertyType     properties.PropertyType `json:"propertyType" binding:"required"`
	Address          string                  `json:"address"`
	City             string                  `json:"city" binding:"required"`
	Area             string                  `json:"area"`
	Price            float64                 `json:"price" binding:"required,gt=0"`
	SecurityDeposit  float64                 `json:"securityDeposit"`
	Bedrooms         int                     `json:"bedrooms"`
	Bathrooms        int                     `json:"bathrooms"`
	PropertyArea     float64                 `json:"propertyArea"`
	Furnished        bool                    `json:"furnished"`
	ParkingAvailable bool                    `json:"parkingAvailable"`
	Amenities        []string                `json:"amenities"`
	AvailableFrom    string                  `json:"availableFrom"`
}

func (s *Server) handleCreateProperty(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property data", "errors": map[string][]string{"request": {err.Error()}}})
		return
	}

	landlordID := middleware.UserID(c)
	owner, err := s.users.GetByID(c.Request.Context(), landlordID)
	if err != nil || owner == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Owner lookup failed"})
		return
	}

	p := &properties.Property{
		Title:            req.Title,
		Description:      req.Description,
		PropertyType:     req.PropertyType,
		Address:          req.Address,
		City:             req.City,
		Area:             req.Area,
		Price:            req.Price,
		SecurityDeposit:  req.SecurityDeposit,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		PropertyArea:     req.PropertyArea,
		Furnished:        req.Furnished,
		ParkingAvailable: req.ParkingAvailable,
		Amenities:        req.Amenities,
		AvailableFrom:    req.AvailableFrom,
		Landlord: properties.LandlordInfo{
			ID:          owner.ID,
			FullName:    owner.FullName,
			Email:       owner.Email,
			PhoneNumber: owner.PhoneNumber,
		},
	}
	created, err := s.props.Create(c.Request.Context(), p)
	if err != nil {
		logger.Errorf("server: property creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create property"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
