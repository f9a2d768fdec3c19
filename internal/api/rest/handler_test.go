package rest_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/teia-community/teia-analytics/internal/api/rest"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/mocks"
	"github.com/teia-community/teia-analytics/internal/store"
	"github.com/teia-community/teia-analytics/internal/store/schema"
)

const testAddress = "tz1g6JRCpsEnD2BLiAzPNK3GBD1fKicV9rCx"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testRun(program schema.RunProgram) *schema.AnalysisRun {
	return &schema.AnalysisRun{
		ID:        uuid.MustParse("5b0d2a3e-7f1c-4f5e-9a57-2d3c1b0e8f11"),
		Program:   program,
		UserCount: 2,
		Summary:   datatypes.JSON(`{"users":2}`),
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newRouter(st store.Store) *gin.Engine {
	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(st))
	return router
}

func serve(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := serve(newRouter(mocks.NewMockStore(ctrl)), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"teia-analytics-api"}`, w.Body.String())
}

func TestGetLatestRun(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMocks     func(*mocks.MockStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "latest run of any program",
			target: "/api/v1/runs/latest",
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(testRun(schema.RunProgramUsers), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"id":"5b0d2a3e-7f1c-4f5e-9a57-2d3c1b0e8f11",
				"program":"teia-users",
				"user_count":2,
				"summary":{"users":2},
				"created_at":"2024-01-01T00:00:00Z"
			}`,
		},
		{
			name:   "no run",
			target: "/api/v1/runs/latest?program=token-distribution",
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgramDistribution).Return(nil, domain.ErrRunNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":{"code":"run_not_found","message":"No analysis run found"}}`,
		},
		{
			name:           "invalid program",
			target:         "/api/v1/runs/latest?program=indexer",
			setupMocks:     func(st *mocks.MockStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "store failure",
			target: "/api/v1/runs/latest",
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			st := mocks.NewMockStore(ctrl)
			tt.setupMocks(st)

			w := serve(newRouter(st), tt.target)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestGetUser(t *testing.T) {
	run := testRun(schema.RunProgramUsers)

	tests := []struct {
		name           string
		target         string
		setupMocks     func(*mocks.MockStore)
		expectedStatus int
		expectedType   string
	}{
		{
			name:   "user of the latest run",
			target: "/api/v1/users/" + testAddress,
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(run, nil)
				st.EXPECT().GetUser(gomock.Any(), run.ID, testAddress).Return(&schema.User{
					Address:   testAddress,
					ProfileID: 3,
					Type:      string(domain.UserTypeArtist),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   string(domain.UserTypeArtist),
		},
		{
			name:   "user of an explicit run",
			target: "/api/v1/users/" + testAddress + "?run_id=" + run.ID.String(),
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetUser(gomock.Any(), run.ID, testAddress).Return(&schema.User{
					Address: testAddress,
					Type:    string(domain.UserTypePatron),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   string(domain.UserTypePatron),
		},
		{
			name:           "invalid address",
			target:         "/api/v1/users/0xabc",
			setupMocks:     func(st *mocks.MockStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid run id",
			target:         "/api/v1/users/" + testAddress + "?run_id=latest",
			setupMocks:     func(st *mocks.MockStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "user not found",
			target: "/api/v1/users/" + testAddress,
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(run, nil)
				st.EXPECT().GetUser(gomock.Any(), run.ID, testAddress).Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "no run",
			target: "/api/v1/users/" + testAddress,
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(nil, domain.ErrRunNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			st := mocks.NewMockStore(ctrl)
			tt.setupMocks(st)

			w := serve(newRouter(st), tt.target)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedType != "" {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedType, body["type"])
				assert.Equal(t, testAddress, body["address"])
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	run := testRun(schema.RunProgramUsers)

	tests := []struct {
		name           string
		target         string
		setupMocks     func(*mocks.MockStore)
		expectedStatus int
		expectedCount  int
		expectedOffset interface{}
	}{
		{
			name:   "first page of artists",
			target: "/api/v1/users?type=artist&limit=2",
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(run, nil)
				st.EXPECT().ListUsersByType(gomock.Any(), run.ID, store.UserFilter{Type: "artist", Limit: 2, Offset: 0}).
					Return([]schema.User{{Address: "tz1a"}, {Address: "tz1b"}}, uint64(3), nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
			expectedOffset: float64(2),
		},
		{
			name:   "last page",
			target: "/api/v1/users?limit=2&offset=2",
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(run, nil)
				st.EXPECT().ListUsersByType(gomock.Any(), run.ID, store.UserFilter{Limit: 2, Offset: 2}).
					Return([]schema.User{{Address: "tz1c"}}, uint64(3), nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedOffset: nil,
		},
		{
			name:   "limit is capped",
			target: "/api/v1/users?limit=1000",
			setupMocks: func(st *mocks.MockStore) {
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(run, nil)
				st.EXPECT().ListUsersByType(gomock.Any(), run.ID, store.UserFilter{Limit: rest.MAX_PAGE_SIZE}).
					Return([]schema.User{}, uint64(0), nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
			expectedOffset: nil,
		},
		{
			name:   "allowed users only",
			target: "/api/v1/users?restricted=false",
			setupMocks: func(st *mocks.MockStore) {
				allowed := false
				st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgram("")).Return(run, nil)
				st.EXPECT().ListUsersByType(gomock.Any(), run.ID, store.UserFilter{Restricted: &allowed, Limit: rest.DEFAULT_PAGE_SIZE}).
					Return([]schema.User{{Address: "tz1a"}}, uint64(1), nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedOffset: nil,
		},
		{
			name:           "invalid restricted flag",
			target:         "/api/v1/users?restricted=maybe",
			setupMocks:     func(st *mocks.MockStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid type",
			target:         "/api/v1/users?type=collector",
			setupMocks:     func(st *mocks.MockStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid limit",
			target:         "/api/v1/users?limit=ten",
			setupMocks:     func(st *mocks.MockStore) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			st := mocks.NewMockStore(ctrl)
			tt.setupMocks(st)

			w := serve(newRouter(st), tt.target)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, run.ID.String(), body["run_id"])
			assert.Len(t, body["items"], tt.expectedCount)
			assert.Equal(t, tt.expectedOffset, body["offset"])
		})
	}
}

func TestListAllocations(t *testing.T) {
	run := testRun(schema.RunProgramDistribution)

	t.Run("allocations of the latest distribution", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgramDistribution).Return(run, nil)
		st.EXPECT().ListAllocations(gomock.Any(), run.ID, rest.DEFAULT_PAGE_SIZE, 0).Return([]schema.Allocation{
			{
				Address:        testAddress,
				Type:           string(domain.UserTypeArtist),
				ScalingFactor:  2,
				Amounts:        datatypes.NewJSONType(map[string]float64{"minting": 5}),
				ActivityAmount: 5,
				TotalAmount:    5,
			},
		}, uint64(1), nil)

		w := serve(newRouter(st), "/api/v1/allocations")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"run_id":"5b0d2a3e-7f1c-4f5e-9a57-2d3c1b0e8f11",
			"items":[{
				"address":"`+testAddress+`",
				"username":"",
				"type":"artist",
				"scaling_factor":2,
				"amounts":{"minting":5},
				"activity_amount":5,
				"total_amount":5
			}],
			"total":1
		}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().GetLatestRun(gomock.Any(), schema.RunProgramDistribution).Return(run, nil)
		st.EXPECT().ListAllocations(gomock.Any(), run.ID, rest.DEFAULT_PAGE_SIZE, 0).Return(nil, uint64(0), errors.New("timeout"))

		w := serve(newRouter(st), "/api/v1/allocations")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
