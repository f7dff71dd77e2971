package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/FarhanAlam-Official/GharSaathi/internal/auth"
	"github.com/FarhanAlam-Official/GharSaathi/internal/properties"
)

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerLandlord(t *testing.T, r *gin.Engine) auth.AuthResponse {
	t.Helper()
	w := postJSON(r, "/api/auth/register", gin.H{
		"email":    "sita@example.com",
		"password": "secret1",
		"fullName": "Sita Shrestha",
		"role":     "LANDLORD",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp auth.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func createListing(t *testing.T, r *gin.Engine, token string, body gin.H) properties.Property {
	t.Helper()
	w := postJSON(r, "/api/properties", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p properties.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestCreatePropertyRequiresLandlordRole(t *testing.T) {
	r, _ := newTestRouter(t)
	tenant := registerTenant(t, r)

	w := postJSON(r, "/api/properties", gin.H{
		"title": "x", "propertyType": "ROOM", "city": "Kathmandu", "price": 1000,
	}, tenant.AccessToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = postJSON(r, "/api/properties", gin.H{
		"title": "x", "propertyType": "ROOM", "city": "Kathmandu", "price": 1000,
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndGetProperty(t *testing.T) {
	r, _ := newTestRouter(t)
	landlord := registerLandlord(t, r)

	created := createListing(t, r, landlord.AccessToken, gin.H{
		"title":        "Sunny Apartment in Baneshwor",
		"propertyType": "APARTMENT",
		"city":         "Kathmandu",
		"area":         "Baneshwor",
		"price":        25000,
		"bedrooms":     2,
	})
	require.EqualValues(t, 1, created.ID)
	require.Equal(t, "Sita Shrestha", created.Landlord.FullName)

	w := getPath(r, "/api/properties/1")
	require.Equal(t, http.StatusOK, w.Code)
	var got properties.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Sunny Apartment in Baneshwor", got.Title)
}

func TestGetPropertyNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := getPath(r, "/api/properties/999")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Property not found")

	w = getPath(r, "/api/properties/not-a-number")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPropertiesPaginates(t *testing.T) {
	r, _ := newTestRouter(t)
	landlord := registerLandlord(t, r)
	for i := 0; i < 15; i++ {
		createListing(t, r, landlord.AccessToken, gin.H{
			"title": "Listing", "propertyType": "ROOM", "city": "Kathmandu", "price": 1000 + i,
		})
	}

	w := getPath(r, "/api/properties?page=1&size=12")
	require.Equal(t, http.StatusOK, w.Code)
	var res properties.ListResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 15, res.TotalProperties)
	require.Equal(t, 2, res.TotalPages)
	require.Equal(t, 1, res.CurrentPage)
	require.Len(t, res.Properties, 3)
}

func TestSearchPropertiesIsPublic(t *testing.T) {
	r, _ := newTestRouter(t)
	landlord := registerLandlord(t, r)
	createListing(t, r, landlord.AccessToken, gin.H{
		"title": "Cozy Room near Patan Durbar", "propertyType": "ROOM", "city": "Lalitpur", "area": "Patan", "price": 8000,
	})
	createListing(t, r, landlord.AccessToken, gin.H{
		"title": "Modern Studio", "propertyType": "STUDIO", "city": "Pokhara", "area": "Lakeside", "price": 18000,
	})

	w := postJSON(r, "/api/properties/search", properties.SearchCriteria{Keyword: "patan", Size: 12}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var res properties.ListResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 1, res.TotalProperties)
	require.Equal(t, "Cozy Room near Patan Durbar", res.Properties[0].Title)
}

func TestUploadWithoutMediaStore(t *testing.T) {
	r, _ := newTestRouter(t)
	landlord := registerLandlord(t, r)

	w := postJSON(r, "/api/files/upload", nil, landlord.AccessToken)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "File storage is not configured")
}
