package components

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	custom_error "github.com/JungleeAadmi/component-storage/pkg/errors"
	"github.com/JungleeAadmi/component-storage/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewComponentHandler(service).RegisterRoutes(router.Group("/api"))
	return router
}

func perform(router *gin.Engine, method, path, body, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetComponentsFilters(t *testing.T) {
	service := new(MockService)
	service.On("ListComponents", ComponentFilter{SectionID: intPtr(3), Category: "Resistor"}).
		Return([]models.ComponentWithLocation{{Component: models.Component{ID: 1, Name: "10k"}, ContainerName: "Cabinet"}}, nil)

	w := perform(setupTestRouter(service), http.MethodGet, "/api/components?section_id=3&category=Resistor", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"container_name":"Cabinet"`)
	service.AssertExpectations(t)
}

func TestGetComponentsRejectsBadFilter(t *testing.T) {
	service := new(MockService)

	w := perform(setupTestRouter(service), http.MethodGet, "/api/components?section_id=abc", "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "ListComponents", mock.Anything)
}

func TestCreateComponentJSON(t *testing.T) {
	service := new(MockService)
	service.On("PlaceComponent", mock.MatchedBy(func(req models.ComponentRequest) bool {
		return *req.SectionID == 5 && *req.GridPosition == "A-1A" && *req.Name == "NE555" &&
			req.CustomData != nil && req.CustomData.Notes == "timer"
	}), (*multipart.FileHeader)(nil), []*multipart.FileHeader(nil)).
		Return(&models.Component{ID: 9, Name: "NE555"}, nil)

	body := `{"section_id":5,"grid_position":"A-1A","name":"NE555","custom_data":{"notes":"timer","items":[]}}`
	w := perform(setupTestRouter(service), http.MethodPost, "/api/components", body, "application/json")

	assert.Equal(t, http.StatusCreated, w.Code)
	service.AssertExpectations(t)
}

func TestCreateComponentMultipart(t *testing.T) {
	service := new(MockService)
	service.On("PlaceComponent", mock.MatchedBy(func(req models.ComponentRequest) bool {
		return *req.SectionID == 5 && *req.Quantity == 20 && *req.Name == "BC547" &&
			len(req.CustomData.Items) == 1 && req.Value == nil
	}), mock.MatchedBy(func(image *multipart.FileHeader) bool {
		return image != nil && image.Filename == "bc547.png"
	}), mock.MatchedBy(func(files []*multipart.FileHeader) bool {
		return len(files) == 2 && files[0].Filename == "datasheet.pdf" && files[1].Filename == "pinout.pdf"
	})).Return(&models.Component{ID: 10, Name: "BC547"}, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("section_id", "5"))
	require.NoError(t, writer.WriteField("grid_position", "A-1B"))
	require.NoError(t, writer.WriteField("name", "BC547"))
	require.NoError(t, writer.WriteField("quantity", "20"))
	require.NoError(t, writer.WriteField("custom_data", `{"notes":"","items":[{"name":"spare","quantity":2}]}`))
	for field, name := range map[string]string{"image": "bc547.png", "attachments": "datasheet.pdf", "attachments[]": "pinout.pdf"} {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	w := perform(setupTestRouter(service), http.MethodPost, "/api/components", body.String(), writer.FormDataContentType())

	assert.Equal(t, http.StatusCreated, w.Code)
	service.AssertExpectations(t)
}

func TestCreateComponentMultipartBadQuantity(t *testing.T) {
	service := new(MockService)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "BC547"))
	require.NoError(t, writer.WriteField("quantity", "lots"))
	require.NoError(t, writer.Close())

	w := perform(setupTestRouter(service), http.MethodPost, "/api/components", body.String(), writer.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must be a whole number")
}

func TestComponentRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/api/components/9",
			setupMock: func(s *MockService) {
				s.On("GetComponent", 9).Return(&models.Component{ID: 9, Name: "NE555", Attachments: []models.Attachment{}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"attachments":[]`,
		},
		{
			name:   "get missing",
			method: http.MethodGet,
			path:   "/api/components/404",
			setupMock: func(s *MockService) {
				s.On("GetComponent", 404).Return(nil, custom_error.NotFound("component", 404))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error_kind":"not_found"`,
		},
		{
			name:   "move",
			method: http.MethodPost,
			path:   "/api/components/9/move",
			body:   `{"section_id":6,"grid_position":"B-1A"}`,
			setupMock: func(s *MockService) {
				s.On("MoveComponent", 9, models.MoveRequest{SectionID: 6, GridPosition: "B-1A"}).
					Return(&models.Component{ID: 9, SectionID: 6, GridPosition: "B-1A"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"grid_position":"B-1A"`,
		},
		{
			name:   "move to occupied cell",
			method: http.MethodPost,
			path:   "/api/components/9/move",
			body:   `{"section_id":6,"grid_position":"B-1A"}`,
			setupMock: func(s *MockService) {
				s.On("MoveComponent", 9, models.MoveRequest{SectionID: 6, GridPosition: "B-1A"}).
					Return(nil, custom_error.Conflict("cell B-1A is already occupied"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "already occupied",
		},
		{
			name:           "move without target",
			method:         http.MethodPost,
			path:           "/api/components/9/move",
			body:           `{}`,
			setupMock:      func(s *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "set quantity to zero",
			method: http.MethodPatch,
			path:   "/api/components/9/quantity",
			body:   `{"quantity":0}`,
			setupMock: func(s *MockService) {
				s.On("SetQuantity", 9, 0).Return(&models.Component{ID: 9, Quantity: 0, Status: "empty"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"empty"`,
		},
		{
			name:           "set quantity without value",
			method:         http.MethodPatch,
			path:           "/api/components/9/quantity",
			body:           `{}`,
			setupMock:      func(s *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/api/components/9",
			setupMock: func(s *MockService) {
				s.On("DeleteComponent", 9).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Component deleted successfully",
		},
		{
			name:   "history",
			method: http.MethodGet,
			path:   "/api/components/9/history",
			setupMock: func(s *MockService) {
				s.On("History", 9).Return([]models.AuditLog{{ID: 1, Action: "create", ResourceType: "component", ResourceID: 9}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"action":"create"`,
		},
		{
			name:   "delete attachment",
			method: http.MethodDelete,
			path:   "/api/attachments/2",
			setupMock: func(s *MockService) {
				s.On("DeleteAttachment", 2).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Attachment deleted successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)

			contentType := ""
			if tt.body != "" {
				contentType = "application/json"
			}
			w := perform(setupTestRouter(service), tt.method, tt.path, tt.body, contentType)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
		})
	}
}

func TestUpdateComponentPassesOnlySuppliedFields(t *testing.T) {
	service := new(MockService)
	service.On("UpdateComponent", 9, mock.MatchedBy(func(req models.ComponentRequest) bool {
		return req.Name == nil && req.Quantity == nil && req.Manufacturer != nil && *req.Manufacturer == "TI"
	}), (*multipart.FileHeader)(nil), []*multipart.FileHeader(nil)).
		Return(&models.Component{ID: 9, Manufacturer: "TI"}, nil)

	w := perform(setupTestRouter(service), http.MethodPut, "/api/components/9", `{"manufacturer":"TI"}`, "application/json")

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}
