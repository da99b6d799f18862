package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/repeto/placement-board/internal/database"
	"github.com/repeto/placement-board/internal/handlers"
	"github.com/repeto/placement-board/internal/middleware"
	"github.com/repeto/placement-board/internal/models"
	"github.com/repeto/placement-board/internal/services"
)

const testSecret = "test-secret"

// newTestRouter wires the API the same way cmd/api does, against an
// in-memory database seeded with a Department{CSE,IT} category.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Create(&models.Category{
		Name:      "Department",
		InputType: models.InputMultiSelect,
		Options:   []models.CategoryOption{{Name: "CSE"}, {Name: "IT"}},
	}).Error)

	listingService := services.NewListingService(db)
	categoryService := services.NewCategoryService(db, nil)

	jobHandler := handlers.NewJobPostingHandler(listingService)
	projectHandler := handlers.NewProjectHandler(listingService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/health", handlers.HealthCheck)
	api.GET("/categories", categoryHandler.List)
	api.GET("/job-postings", jobHandler.List)
	api.GET("/projects", projectHandler.List)

	authed := api.Group("", middleware.Auth(testSecret))
	authed.POST("/job-postings", jobHandler.Create)
	authed.PUT("/job-postings", jobHandler.Update)
	authed.DELETE("/job-postings", jobHandler.Delete)
	authed.POST("/projects", projectHandler.Create)
	authed.PUT("/projects", projectHandler.Update)
	authed.DELETE("/projects", projectHandler.Delete)
	authed.POST("/categories", categoryHandler.Create)
	authed.POST("/categories/:id/options", categoryHandler.AddOption)
	authed.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	authed.DELETE("/options/:id", categoryHandler.DeleteOption)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin-1"})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateJobPosting_FullRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	payload := `{
		"companyName": "Acme",
		"roleName": "Eng",
		"jobFilterOptions": [{"categoryName": "Department", "optionName": "CSE"}]
	}`
	w := do(t, r, http.MethodPost, "/api/v1/job-postings", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created["jobId"])

	w = do(t, r, http.MethodGet, "/api/v1/job-postings", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listings []struct {
		ID          uint   `json:"id"`
		CompanyName string `json:"companyName"`
		Filters     []struct {
			CategoryName string `json:"categoryName"`
			OptionName   string `json:"optionName"`
		} `json:"filters"`
		Contacts []json.RawMessage `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "Acme", listings[0].CompanyName)
	require.Len(t, listings[0].Filters, 1)
	assert.Equal(t, "Department", listings[0].Filters[0].CategoryName)
	assert.Equal(t, "CSE", listings[0].Filters[0].OptionName)
	assert.NotNil(t, listings[0].Contacts)
}

func TestCreateJobPosting_RequiresAuth(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/job-postings", "", `{"companyName":"Acme","roleName":"Eng"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateJobPosting_RejectsBadPayload(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodPost, "/api/v1/job-postings", token, `{"companyName":"Acme"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateJobPosting_MissingID(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodPut, "/api/v1/job-postings", token, `{"companyName":"Acme","roleName":"Eng"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateJobPosting_NotFound(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodPut, "/api/v1/job-postings", token,
		`{"jobId":9999,"companyName":"Acme","roleName":"Eng"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateJobPosting_MultiSelectReplacesLinks(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodPost, "/api/v1/job-postings", token, `{
		"companyName": "Acme",
		"roleName": "Eng",
		"jobFilterOptions": [{"categoryName": "Department", "optionName": "CSE"}]
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, r, http.MethodPut, "/api/v1/job-postings", token, fmt.Sprintf(`{
		"jobId": %d,
		"companyName": "Acme",
		"roleName": "Eng",
		"jobFilterOptions": [{"categoryName": "Department", "optionName": ["CSE","IT"]}]
	}`, created["jobId"]))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/v1/job-postings", "", "")
	var listings []struct {
		Filters []struct {
			OptionName string `json:"optionName"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listings))
	require.Len(t, listings, 1)
	assert.Len(t, listings[0].Filters, 2)
}

func TestDeleteJobPosting(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodPost, "/api/v1/job-postings", token, `{"companyName":"Acme","roleName":"Eng"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, r, http.MethodDelete, "/api/v1/job-postings", token,
		fmt.Sprintf(`{"jobId":%d}`, created["jobId"]))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/job-postings", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestDeleteJobPosting_MissingID(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodDelete, "/api/v1/job-postings", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_UseProjectIDKey(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodPost, "/api/v1/projects", token, `{"companyName":"Repeto","roleName":"Portfolio"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created["projectId"])

	// The job surface must not see project listings.
	w = do(t, r, http.MethodGet, "/api/v1/job-postings", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProjectSurface_CannotAddressJobListings(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodPost, "/api/v1/job-postings", token, `{"companyName":"Acme","roleName":"Eng"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	jobID := created["jobId"]

	// A jobId sent to the project surface is not that surface's key.
	w = do(t, r, http.MethodPut, "/api/v1/projects", token,
		fmt.Sprintf(`{"jobId":%d,"companyName":"Mallory","roleName":"Eng"}`, jobID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Even the right key cannot cross kinds.
	w = do(t, r, http.MethodPut, "/api/v1/projects", token,
		fmt.Sprintf(`{"projectId":%d,"companyName":"Mallory","roleName":"Eng"}`, jobID))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/api/v1/projects", token,
		fmt.Sprintf(`{"projectId":%d}`, jobID))
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/job-postings", "", "")
	var listings []struct {
		CompanyName string `json:"companyName"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "Acme", listings[0].CompanyName)
}

func TestListCategories_Public(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/categories", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var categories []struct {
		CategoryName string `json:"categoryName"`
		Options      []struct {
			OptionName string `json:"optionName"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Department", categories[0].CategoryName)
	assert.Len(t, categories[0].Options, 2)
}

func TestCategoryAdmin_CreateAndDelete(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t)

	w := do(t, r, http.MethodPost, "/api/v1/categories", token,
		`{"categoryName":"Job Type","options":["Full-Time","Internship"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		CategoryID uint `json:"categoryId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.CategoryID)

	w = do(t, r, http.MethodPost, fmt.Sprintf("/api/v1/categories/%d/options", created.CategoryID),
		token, `{"optionName":"Contract"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", created.CategoryID), token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, "/api/v1/categories/9999", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
