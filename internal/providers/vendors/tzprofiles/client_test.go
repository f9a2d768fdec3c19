package tzprofiles_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/mocks"
	"github.com/teia-community/teia-analytics/internal/providers/vendors/tzprofiles"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// TestClient_GetAllProfiles pages until a short page
func TestClient_GetAllProfiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := tzprofiles.NewClient(mockHTTPClient, tzprofiles.API_ENDPOINT, 2)

	pages := map[int]string{
		0: `{"data":{"tzprofiles":[{"account":"tz1a","alias":"alice","twitter":"@alice"},{"account":"tz1b","alias":null}]}}`,
		2: `{"data":{"tzprofiles":[{"account":"tz1c","github":"carol","domain_name":"carol.tez"}]}}`,
	}

	mockHTTPClient.EXPECT().
		Post(ctx, tzprofiles.API_ENDPOINT, "application/json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
			var request struct {
				OperationName string         `json:"operationName"`
				Variables     map[string]int `json:"variables"`
			}
			require.NoError(t, json.Unmarshal(body, &request))
			assert.Equal(t, "TzProfiles", request.OperationName)
			assert.Equal(t, 2, request.Variables["limit"])
			return []byte(pages[request.Variables["offset"]]), nil
		}).
		Times(2)

	profiles, err := client.GetAllProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	require.NotNil(t, profiles["tz1a"].Alias)
	assert.Equal(t, "alice", *profiles["tz1a"].Alias)
	assert.Equal(t, "@alice", *profiles["tz1a"].Twitter)
	assert.Nil(t, profiles["tz1b"].Alias)
	assert.Equal(t, "carol.tez", *profiles["tz1c"].DomainName)
}

func TestClient_GetProfiles_Errors(t *testing.T) {
	tests := []struct {
		name     string
		response []byte
		err      error
		errMsg   string
	}{
		{
			name:   "http error",
			err:    errors.New("network error"),
			errMsg: "failed to call tzprofiles API",
		},
		{
			name:     "invalid json",
			response: []byte("invalid json"),
			errMsg:   "failed to unmarshal tzprofiles response",
		},
		{
			name:     "graphql errors",
			response: []byte(`{"errors":[{"message":"field not found"},{"message":"bad offset"}]}`),
			errMsg:   "tzprofiles query failed: field not found; bad offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := context.Background()
			mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
			client := tzprofiles.NewClient(mockHTTPClient, tzprofiles.API_ENDPOINT, 0)

			mockHTTPClient.EXPECT().
				Post(ctx, tzprofiles.API_ENDPOINT, "application/json", gomock.Any()).
				Return(tt.response, tt.err)

			profiles, err := client.GetProfiles(ctx, 0, 10)
			require.Error(t, err)
			assert.Nil(t, profiles)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
