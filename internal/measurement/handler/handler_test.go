package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	athleteModel "github.com/perftrack/perftrack/internal/athlete/model"
	measurementModel "github.com/perftrack/perftrack/internal/measurement/model"
	"github.com/perftrack/perftrack/internal/measurement/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateMeasurement(
	ctx context.Context,
	req *measurementModel.CreateMeasurementRequest,
) (*measurementModel.MeasurementResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*measurementModel.MeasurementResponse), args.Error(1)
}

func (m *mockService) GetMeasurement(
	ctx context.Context,
	id uuid.UUID,
) (*measurementModel.MeasurementResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*measurementModel.MeasurementResponse), args.Error(1)
}

func (m *mockService) ListMeasurements(
	ctx context.Context,
	filter *measurementModel.Filter,
) (*measurementModel.MeasurementsResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*measurementModel.MeasurementsResponse), args.Error(1)
}

func (m *mockService) VerifyMeasurement(
	ctx context.Context,
	id uuid.UUID,
	req *measurementModel.VerifyMeasurementRequest,
) (*measurementModel.MeasurementResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*measurementModel.MeasurementResponse), args.Error(1)
}

func (m *mockService) AmbiguousMeasurements(
	ctx context.Context,
	orgID uuid.UUID,
) (*measurementModel.MeasurementsResponse, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*measurementModel.MeasurementsResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_CreateMeasurement(t *testing.T) {
	userID := uuid.New()
	coachID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("success with inferred team", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/measurements", handler.CreateMeasurement)

		req := &measurementModel.CreateMeasurementRequest{
			UserID:      userID,
			Metric:      "FLY10_TIME",
			Value:       1.24,
			Date:        date,
			SubmittedBy: coachID,
		}
		teamID := uuid.New()
		resp := &measurementModel.MeasurementResponse{
			ID:              uuid.New(),
			UserID:          userID,
			TeamID:          &teamID,
			TeamContextAuto: true,
			Metric:          "FLY10_TIME",
			Value:           1.24,
			Units:           "s",
			Date:            date,
			SubmittedBy:     coachID,
		}

		mockSvc.On("CreateMeasurement", mock.Anything, req).Return(resp, nil)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/measurements", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response measurementModel.MeasurementResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		require.NotNil(t, response.TeamID)
		assert.Equal(t, teamID, *response.TeamID)
		assert.True(t, response.TeamContextAuto)
		assert.Equal(t, "s", response.Units)
		mockSvc.AssertExpectations(t)
	})

	t.Run("athlete not found", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/measurements", handler.CreateMeasurement)

		req := &measurementModel.CreateMeasurementRequest{
			UserID:      uuid.New(),
			Metric:      "FLY10_TIME",
			Value:       1.24,
			Date:        date,
			SubmittedBy: coachID,
		}

		mockSvc.On("CreateMeasurement", mock.Anything, req).
			Return(nil, athleteModel.ErrAthleteNotFound)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/measurements", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "NOT_FOUND", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid request body", func(t *testing.T) {
		handler := New(new(mockService), zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/measurements", handler.CreateMeasurement)

		body := []byte(`{"invalid": "json"`)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/measurements", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/measurements", handler.CreateMeasurement)

		req := &measurementModel.CreateMeasurementRequest{
			UserID:      userID,
			Metric:      "FLY10_TIME",
			Value:       1.24,
			Date:        date,
			SubmittedBy: coachID,
		}

		mockSvc.On("CreateMeasurement", mock.Anything, req).
			Return(nil, errors.New("database connection failed"))

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/measurements", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "INTERNAL_ERROR", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandler_ListMeasurements(t *testing.T) {
	t.Run("filter parsing", func(t *testing.T) {
		orgID := uuid.New()
		teamID := uuid.New()
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/measurements", handler.ListMeasurements)

		verified := true
		expected := &measurementModel.Filter{
			OrganizationID: orgID,
			TeamIDs:        []uuid.UUID{teamID},
			Metric:         "VERTICAL_JUMP",
			Verified:       &verified,
			Limit:          20,
			Offset:         40,
		}

		mockSvc.On("ListMeasurements", mock.Anything, expected).
			Return(&measurementModel.MeasurementsResponse{Measurements: []measurementModel.MeasurementResponse{}, Total: 0}, nil)

		url := "/measurements?organization_id=" + orgID.String() +
			"&team_id=" + teamID.String() +
			"&metric=VERTICAL_JUMP&verified=true&limit=20&offset=40"
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", url, nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("date range accepts date-only form", func(t *testing.T) {
		orgID := uuid.New()
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/measurements", handler.ListMeasurements)

		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		expected := &measurementModel.Filter{
			OrganizationID: orgID,
			From:           &from,
			To:             &to,
		}

		mockSvc.On("ListMeasurements", mock.Anything, expected).
			Return(&measurementModel.MeasurementsResponse{Measurements: []measurementModel.MeasurementResponse{}, Total: 0}, nil)

		url := "/measurements?organization_id=" + orgID.String() + "&from=2025-01-01&to=2025-06-30"
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", url, nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid team_id", func(t *testing.T) {
		handler := New(new(mockService), zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/measurements", handler.ListMeasurements)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/measurements?team_id=not-a-uuid", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		handler := New(new(mockService), zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/measurements", handler.ListMeasurements)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/measurements?limit=-1", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_VerifyMeasurement(t *testing.T) {
	measurementID := uuid.New()
	coachID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/measurements/:id/verify", handler.VerifyMeasurement)

		req := &measurementModel.VerifyMeasurementRequest{VerifiedBy: coachID}
		resp := &measurementModel.MeasurementResponse{
			ID:         measurementID,
			UserID:     uuid.New(),
			Metric:     "FLY10_TIME",
			Value:      1.24,
			IsVerified: true,
			VerifiedBy: &coachID,
		}

		mockSvc.On("VerifyMeasurement", mock.Anything, measurementID, req).Return(resp, nil)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/measurements/"+measurementID.String()+"/verify", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response measurementModel.MeasurementResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.True(t, response.IsVerified)
		mockSvc.AssertExpectations(t)
	})

	t.Run("already verified", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/measurements/:id/verify", handler.VerifyMeasurement)

		req := &measurementModel.VerifyMeasurementRequest{VerifiedBy: coachID}

		mockSvc.On("VerifyMeasurement", mock.Anything, measurementID, req).
			Return(nil, measurementModel.ErrAlreadyVerified)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/measurements/"+measurementID.String()+"/verify", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusConflict, w.Code)
		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "ALREADY_VERIFIED", response.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("measurement not found", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/measurements/:id/verify", handler.VerifyMeasurement)

		req := &measurementModel.VerifyMeasurementRequest{VerifiedBy: coachID}

		mockSvc.On("VerifyMeasurement", mock.Anything, measurementID, req).
			Return(nil, measurementModel.ErrMeasurementNotFound)

		body, _ := json.Marshal(req)
		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/measurements/"+measurementID.String()+"/verify", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid measurement id", func(t *testing.T) {
		handler := New(new(mockService), zap.NewNop().Sugar())
		router := setupRouter()
		router.POST("/measurements/:id/verify", handler.VerifyMeasurement)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("POST", "/measurements/not-a-uuid/verify", bytes.NewBuffer([]byte(`{}`)))
		httpReq.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_ListAmbiguous(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		orgID := uuid.New()
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/measurements/ambiguous", handler.ListAmbiguous)

		resp := &measurementModel.MeasurementsResponse{
			Measurements: []measurementModel.MeasurementResponse{
				{ID: uuid.New(), UserID: uuid.New(), Metric: "FLY10_TIME", Value: 1.3},
			},
			Total: 1,
		}

		mockSvc.On("AmbiguousMeasurements", mock.Anything, orgID).Return(resp, nil)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/measurements/ambiguous?organization_id="+orgID.String(), nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response measurementModel.MeasurementsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, 1, response.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing organization_id falls through to service", func(t *testing.T) {
		mockSvc := new(mockService)
		handler := New(mockSvc, zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/measurements/ambiguous", handler.ListAmbiguous)

		mockSvc.On("AmbiguousMeasurements", mock.Anything, uuid.Nil).
			Return(&measurementModel.MeasurementsResponse{Measurements: []measurementModel.MeasurementResponse{}, Total: 0}, nil)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/measurements/ambiguous", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusOK, w.Code)
		var response measurementModel.MeasurementsResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, 0, response.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed organization_id", func(t *testing.T) {
		handler := New(new(mockService), zap.NewNop().Sugar())
		router := setupRouter()
		router.GET("/measurements/ambiguous", handler.ListAmbiguous)

		w := httptest.NewRecorder()
		httpReq, _ := http.NewRequest("GET", "/measurements/ambiguous?organization_id=bogus", nil)
		router.ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
