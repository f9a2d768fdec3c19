package tezos_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/mocks"
	"github.com/teia-community/teia-analytics/internal/providers/tezos"
)

const TZKT_API_URL = "https://api.tzkt.io"

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

func TestTzKTClient_GetTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := tezos.NewTzKTClient(TZKT_API_URL, mockHTTPClient)

	expectedURL := TZKT_API_URL + "/v1/operations/transactions?entrypoint=collect&level.le=2000000&limit=100&offset=200" +
		"&sort.asc=id&status=applied&target=" + domain.TEIA_MARKETPLACE_CONTRACT

	mockHTTPClient.EXPECT().
		Get(ctx, expectedURL, gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string, result interface{}) error {
			return json.Unmarshal([]byte(`[{"id":7,"level":1999999,"timestamp":"2022-01-01T00:00:00Z",
				"sender":{"address":"tz1collector"},"target":{"address":"`+domain.TEIA_MARKETPLACE_CONTRACT+`"},
				"amount":1000000,"parameter":{"entrypoint":"collect","value":"42"}}]`), result)
		}).
		Times(1)

	txs, err := client.GetTransactions(ctx, tezos.TransactionQuery{
		Target:     domain.TEIA_MARKETPLACE_CONTRACT,
		Entrypoint: "collect",
		MaxLevel:   2000000,
	}, 200, 100)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, uint64(7), txs[0].ID)
	assert.Equal(t, "tz1collector", txs[0].Sender.Address)
	assert.Equal(t, int64(1000000), txs[0].Amount)
	require.NotNil(t, txs[0].Parameter)
	assert.JSONEq(t, `"42"`, string(txs[0].Parameter.Value))
}

func TestTzKTClient_GetBigmapKeys(t *testing.T) {
	tests := []struct {
		name        string
		level       uint64
		expectedURL string
	}{
		{
			name:        "current keys",
			level:       0,
			expectedURL: TZKT_API_URL + "/v1/bigmaps/523/keys?limit=10&offset=0&sort.asc=id",
		},
		{
			name:        "historical keys",
			level:       1500000,
			expectedURL: TZKT_API_URL + "/v1/bigmaps/523/historical_keys/1500000?limit=10&offset=0&sort.asc=id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := context.Background()
			mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
			client := tezos.NewTzKTClient(TZKT_API_URL, mockHTTPClient)

			mockHTTPClient.EXPECT().
				Get(ctx, tt.expectedURL, gomock.Any()).
				DoAndReturn(func(ctx context.Context, url string, result interface{}) error {
					return json.Unmarshal([]byte(`[{"id":1,"active":true,"key":"10","value":{"issuer":"tz1a","objkt_id":"5"}}]`), result)
				})

			keys, err := client.GetBigmapKeys(ctx, domain.HEN_SWAPS_V1_BIGMAP, tt.level, 0, 10)
			require.NoError(t, err)
			require.Len(t, keys, 1)
			assert.True(t, keys[0].Active)
			assert.JSONEq(t, `"10"`, string(keys[0].Key))
		})
	}
}

func TestTzKTClient_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := tezos.NewTzKTClient(TZKT_API_URL, mockHTTPClient)

	mockHTTPClient.EXPECT().
		Get(ctx, gomock.Any(), gomock.Any()).
		Return(errors.New("request failed after retries")).
		Times(2)

	_, err := client.GetOriginations(ctx, domain.COLLAB_FACTORY_CONTRACT, 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get originations of "+domain.COLLAB_FACTORY_CONTRACT)

	_, err = client.GetAccounts(ctx, 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get accounts")
}

func TestLookupSource(t *testing.T) {
	source, err := tezos.LookupSource(tezos.SOURCE_HEN_COLLECT)
	require.NoError(t, err)
	assert.Equal(t, "collect", source.Entrypoint)
	assert.Equal(t, []string{domain.HEN_MINTER_CONTRACT, domain.HEN_MARKETPLACE_CONTRACT}, source.Contracts)

	source, err = tezos.LookupSource(tezos.SOURCE_MINT)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.OBJKT_CONTRACT}, source.Contracts)

	_, err = tezos.LookupSource("objkt_collect")
	assert.ErrorIs(t, err, domain.ErrUnknownTransactionType)

	assert.Contains(t, tezos.SourceNames(), tezos.SOURCE_TEIA_CANCEL_SWAP)
}
