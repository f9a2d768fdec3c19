package votes_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/mocks"
	"github.com/teia-community/teia-analytics/internal/votes"
)

const pollID = "QmeJ9ATjn4ge9phDzvpmdZzRZdRoKJdyk4swPiVgaxAx6z"

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

func TestParsePoll(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected map[string]string
		multi    bool
		wantErr  bool
	}{
		{
			name:     "single choice poll",
			data:     `{"question":"Should we?","multi":"false","opt1":"ignored"}`,
			expected: map[string]string{"1": "YES", "2": "NO"},
		},
		{
			name:     "multiple choice poll",
			data:     `{"question":"Which one?","multi":"true","opt1":"red","opt2":"green","opt3":"blue"}`,
			expected: map[string]string{"1": "red", "2": "green", "3": "blue"},
			multi:    true,
		},
		{
			name:    "multiple choice poll without options",
			data:    `{"question":"Which one?","multi":"true"}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			data:    `{"question":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poll, err := votes.ParsePoll(pollID, []byte(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, pollID, poll.ID)
			assert.Equal(t, tt.multi, poll.Multi)
			assert.Equal(t, tt.expected, poll.Options)
		})
	}
}

func TestFetchPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)

	mockHTTPClient.EXPECT().
		GetRaw(ctx, "https://ipfs.io/ipfs/"+pollID).
		Return([]byte(`{"question":"Should we?","multi":"false"}`), nil).
		Times(1)

	poll, err := votes.FetchPoll(ctx, mockHTTPClient, "https://ipfs.io/ipfs/", pollID)
	require.NoError(t, err)
	assert.Equal(t, "Should we?", poll.Question)

	mockHTTPClient.EXPECT().
		GetRaw(ctx, gomock.Any()).
		Return(nil, errors.New("gateway timeout")).
		Times(1)

	_, err = votes.FetchPoll(ctx, mockHTTPClient, "https://ipfs.io/ipfs", pollID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch poll")
}

func TestTally(t *testing.T) {
	poll := votes.Poll{ID: pollID, Options: map[string]string{"1": "YES", "2": "NO"}}
	cast := []domain.Vote{
		{Address: "tz1a", Poll: pollID, Option: "1"},
		{Address: "tz1b", Poll: pollID, Option: "1"},
		{Address: "tz1c", Poll: pollID, Option: "2"},
		{Address: "tz1d", Poll: pollID, Option: "7"},
		{Address: "tz1outsider", Poll: pollID, Option: "2"},
		{Address: "tz1a", Poll: "QmOther", Option: "2"},
	}

	result := votes.Tally(poll, cast, []string{"tz1a", "tz1b", "tz1c", "tz1d"})

	assert.Equal(t, 3, result.Valid)
	assert.Equal(t, []string{"tz1outsider"}, result.Rejected)
	assert.Equal(t, []string{"tz1d"}, result.Invalid)
	require.Len(t, result.Options, 2)
	assert.Equal(t, "YES", result.Options[0].Name)
	assert.Equal(t, 2, result.Options[0].Votes)
	assert.InDelta(t, 200.0/3, result.Options[0].Percentage, 1e-9)
	assert.Equal(t, 1, result.Options[1].Votes)

	name, ok := result.VoteOf("tz1c")
	assert.True(t, ok)
	assert.Equal(t, "NO", name)
	_, ok = result.VoteOf("tz1outsider")
	assert.False(t, ok)

	open := votes.Tally(poll, cast, nil)
	assert.Equal(t, 4, open.Valid, "an empty allowed list accepts every voter")
	assert.Empty(t, open.Rejected)
}

func TestTally_LogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	poll := votes.Poll{ID: pollID, Options: map[string]string{"1": "YES"}}
	votes.Tally(poll, []domain.Vote{{Address: "tz1a", Poll: pollID, Option: "1"}}, nil)

	entries := logs.FilterMessage("Tallied poll").All()
	require.Len(t, entries, 1)
	assert.Equal(t, pollID, entries[0].ContextMap()["poll"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["valid"])
}
