package registry_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/mocks"
	"github.com/teia-community/teia-analytics/internal/registry"
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

func TestListLoader_AddressList(t *testing.T) {
	tests := []struct {
		name        string
		location    string
		setupMocks  func(*mocks.MockFileSystem, *mocks.MockHTTPClient)
		expected    []string
		expectedErr string
	}{
		{
			name:     "local file is deduplicated and sorted",
			location: "restricted.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, _ *mocks.MockHTTPClient) {
				mockFS.EXPECT().
					ReadFile("restricted.json").
					Return([]byte(`["tz1zed", " tz1abc ", "tz1zed", "not-an-address", "KT1contract"]`), nil)
			},
			expected: []string{"KT1contract", "tz1abc", "tz1zed"},
		},
		{
			name:     "remote list",
			location: "https://raw.githubusercontent.com/teia-community/teia-report/main/restricted.json",
			setupMocks: func(_ *mocks.MockFileSystem, mockHTTP *mocks.MockHTTPClient) {
				mockHTTP.EXPECT().
					GetRaw(gomock.Any(), "https://raw.githubusercontent.com/teia-community/teia-report/main/restricted.json").
					Return([]byte(`["tz1remote"]`), nil)
			},
			expected: []string{"tz1remote"},
		},
		{
			name:       "empty location",
			location:   "",
			setupMocks: func(*mocks.MockFileSystem, *mocks.MockHTTPClient) {},
			expected:   []string{},
		},
		{
			name:     "missing file",
			location: "missing.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, _ *mocks.MockHTTPClient) {
				mockFS.EXPECT().ReadFile("missing.json").Return(nil, errors.New("no such file or directory"))
			},
			expectedErr: "failed to read list missing.json",
		},
		{
			name:     "invalid json",
			location: "broken.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, _ *mocks.MockHTTPClient) {
				mockFS.EXPECT().ReadFile("broken.json").Return([]byte(`{"tz1a": true}`), nil)
			},
			expectedErr: "failed to parse list broken.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockHTTP := mocks.NewMockHTTPClient(ctrl)
			tt.setupMocks(mockFS, mockHTTP)

			loader := registry.NewListLoader(mockFS, mockHTTP)
			addresses, err := loader.AddressList(context.Background(), tt.location)

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addresses)
		})
	}
}

func TestListLoader_ContributionLevels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	loader := registry.NewListLoader(mockFS, mocks.NewMockHTTPClient(ctrl))

	mockFS.EXPECT().
		ReadFile("contributors.json").
		Return([]byte(`{"tz1core": 3, "tz1helper": 1, "tz1none": 0, "bogus": 2}`), nil)

	levels, err := loader.ContributionLevels(context.Background(), "contributors.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"tz1core": 3, "tz1helper": 1}, levels)

	mockFS.EXPECT().
		ReadFile("contributors.json").
		Return([]byte(`{"tz1core": -1}`), nil)

	_, err = loader.ContributionLevels(context.Background(), "contributors.json")
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestListLoader_Directory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	loader := registry.NewListLoader(mockFS, mocks.NewMockHTTPClient(ctrl))

	mockFS.EXPECT().
		ReadFile("usernames.json").
		Return([]byte(`{"tz1alice": " alice ", "tz1blank": "  "}`), nil)

	directory, err := loader.Directory(context.Background(), "usernames.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"tz1alice": "alice"}, directory)
}
