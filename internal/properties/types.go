package properties

import "time"

// PropertyType enumerates listing categories.
type PropertyType string

const (
	TypeApartment  PropertyType = "APARTMENT"
	TypeHouse      PropertyType = "HOUSE"
	TypeRoom       PropertyType = "ROOM"
	TypeCommercial PropertyType = "COMMERCIAL"
	TypeLand       PropertyType = "LAND"
	TypeStudio     PropertyType = "STUDIO"
	TypeVilla      PropertyType = "VILLA"
)

// PropertyStatus enumerates listing availability states.
type PropertyStatus string

const (
	StatusAvailable   PropertyStatus = "AVAILABLE"
	StatusRented      PropertyStatus = "RENTED"
	StatusMaintenance PropertyStatus = "MAINTENANCE"
	StatusUnavailable PropertyStatus = "UNAVAILABLE"
	StatusPending     PropertyStatus = "PENDING"
)

// DefaultPageSize is the fixed page size used by the listing views.
const DefaultPageSize = 12

// fallbackFetchSize bounds the unfiltered fetch used by client-side filtering.
const fallbackFetchSize = 100

// PropertyImage is one photo or video attached to a listing.
type PropertyImage struct {
	ID           int64  `json:"id" bson:"id"`
	Filename     string `json:"filename" bson:"filename"`
	FileURL      string `json:"fileUrl" bson:"fileUrl"`
	MediaType    string `json:"mediaType,omitempty" bson:"mediaType,omitempty"`
	DisplayOrder int    `json:"displayOrder" bson:"displayOrder"`
	IsPrimary    bool   `json:"isPrimary" bson:"isPrimary"`
	UploadedAt   string `json:"uploadedAt,omitempty" bson:"uploadedAt,omitempty"`
}

// LandlordInfo is the owner summary nested in a listing.
type LandlordInfo struct {
	ID              int64  `json:"id" bson:"id"`
	FullName        string `json:"fullName" bson:"fullName"`
	Email           string `json:"email" bson:"email"`
	PhoneNumber     string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	PropertiesCount int    `json:"propertiesCount" bson:"propertiesCount"`
	ResponseRate    int    `json:"responseRate" bson:"responseRate"`
	JoinedDate      string `json:"joinedDate,omitempty" bson:"joinedDate,omitempty"`
}

// Property is a rental listing.
type Property struct {
	ID           int64          `json:"id" bson:"id"`
	Title        string         `json:"title" bson:"title"`
	Description  string         `json:"description" bson:"description"`
	PropertyType PropertyType   `json:"propertyType" bson:"propertyType"`
	Status       PropertyStatus `json:"status" bson:"status"`

	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	Area    string `json:"area" bson:"area"`

	Price           float64 `json:"price" bson:"price"`
	SecurityDeposit float64 `json:"securityDeposit" bson:"securityDeposit"`

	Bedrooms     int     `json:"bedrooms" bson:"bedrooms"`
	Bathrooms    int     `json:"bathrooms" bson:"bathrooms"`
	PropertyArea float64 `json:"propertyArea" bson:"propertyArea"`

	Furnished        bool     `json:"furnished" bson:"furnished"`
	ParkingAvailable bool     `json:"parkingAvailable" bson:"parkingAvailable"`
	Amenities        []string `json:"amenities" bson:"amenities"`

	Images []PropertyImage `json:"images" bson:"images"`

	AvailableFrom string       `json:"availableFrom,omitempty" bson:"availableFrom,omitempty"`
	Landlord      LandlordInfo `json:"landlord" bson:"landlord"`

	Views      int       `json:"views" bson:"views"`
	SavedCount int       `json:"savedCount" bson:"savedCount"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SearchCriteria is the filter set sent to the search endpoint. It is rebuilt
// for every search action and never persisted.
type SearchCriteria struct {
	Keyword       string       `json:"keyword,omitempty"`
	City          string       `json:"city,omitempty"`
	PropertyType  PropertyType `json:"propertyType,omitempty"`
	Bedrooms      *int         `json:"bedrooms,omitempty"`
	MinPrice      *float64     `json:"minPrice,omitempty"`
	MaxPrice      *float64     `json:"maxPrice,omitempty"`
	Amenities     []string     `json:"amenities,omitempty"`
	Page          int          `json:"page"`
	Size          int          `json:"size"`
	SortBy        string       `json:"sortBy,omitempty"`
	SortDirection string       `json:"sortDirection,omitempty"`
}

// HasFilters reports whether any filter is active. "all" selections for city
// and type count as inactive.
func (c SearchCriteria) HasFilters() bool {
	return c.Keyword != "" ||
		(c.City != "" && c.City != "all") ||
		(c.PropertyType != "" && c.PropertyType != "all") ||
		c.Bedrooms != nil ||
		c.MinPrice != nil ||
		c.MaxPrice != nil ||
		len(c.Amenities) > 0
}

// ListResult is one page of listings, either server-provided or computed
// locally in fallback mode. Invariants when TotalProperties > 0:
// len(Properties) <= PageSize and CurrentPage < TotalPages.
type ListResult struct {
	Properties      []Property `json:"properties"`
	CurrentPage     int        `json:"currentPage"`
	TotalPages      int        `json:"totalPages"`
	TotalProperties int        `json:"totalProperties"`
	PageSize        int        `json:"pageSize"`
}
