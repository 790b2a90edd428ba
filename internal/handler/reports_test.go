package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"store-locator/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReportStore is a mock implementation of the ReportStore interface
type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) List() ([]string, error) {
	args := m.Called()
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockReportStore) Read(name string) ([]byte, error) {
	args := m.Called(name)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func TestReportHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockNames      []string
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "reports listed in lexical order",
			mockNames:      []string{"AZ-0.html", "CA-0.html", "CA-1.html"},
			expectedStatus: http.StatusOK,
			expectedBody:   []interface{}{"AZ-0.html", "CA-0.html", "CA-1.html"},
		},
		{
			name:           "no reports yet",
			mockNames:      nil,
			expectedStatus: http.StatusOK,
			expectedBody:   []interface{}{},
		},
		{
			name:           "store error",
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockReportStore)
			mockStore.On("List").Return(tt.mockNames, tt.mockError)
			handler := NewReportHandler(mockStore)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/reports", nil)

			handler.List(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err := json.Unmarshal(w.Body.Bytes(), &actualBody)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			mockStore.AssertExpectations(t)
		})
	}
}

func TestReportHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		reportName     string
		mockBody       []byte
		mockError      error
		expectedStatus int
	}{
		{
			name:           "existing report",
			reportName:     "CA-0.html",
			mockBody:       []byte("<table></table>"),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing report",
			reportName:     "ZZ-0.html",
			mockError:      fmt.Errorf("report: read: %w", os.ErrNotExist),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid name",
			reportName:     "notes.txt",
			mockError:      fmt.Errorf("%w: %q", report.ErrInvalidName, "notes.txt"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "store error",
			reportName:     "CA-0.html",
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockReportStore)
			mockStore.On("Read", tt.reportName).Return(tt.mockBody, tt.mockError)
			handler := NewReportHandler(mockStore)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/reports/"+tt.reportName, nil)
			c.Params = gin.Params{{Key: "name", Value: tt.reportName}}

			handler.Get(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
				assert.Equal(t, string(tt.mockBody), w.Body.String())
			}

			mockStore.AssertExpectations(t)
		})
	}
}
