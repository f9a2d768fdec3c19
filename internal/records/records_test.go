package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teia-community/teia-analytics/internal/domain"
)

func tx(sender string, initiator *domain.Account, target string, amount int64, value string) domain.Transaction {
	t := domain.Transaction{
		ID:        1,
		Timestamp: "2021-03-15T10:00:00Z",
		Sender:    domain.Account{Address: sender},
		Initiator: initiator,
		Target:    domain.Account{Address: target},
		Amount:    amount,
	}
	if value != "" {
		t.Parameter = &domain.Parameter{Value: json.RawMessage(value)}
	}
	return t
}

func TestNormalizeMint(t *testing.T) {
	tests := []struct {
		name            string
		tx              domain.Transaction
		expectedCreator string
		expectedToken   string
		wantErr         bool
	}{
		{
			name:            "owner address in parameter",
			tx:              tx(domain.HEN_MINTER_CONTRACT, &domain.Account{Address: "tz1alice"}, domain.OBJKT_CONTRACT, 0, `{"address":"KT1Collab","amount":"1","token_id":"152"}`),
			expectedCreator: "KT1Collab",
			expectedToken:   "152",
		},
		{
			name:            "falls back to initiator",
			tx:              tx(domain.HEN_MINTER_CONTRACT, &domain.Account{Address: "tz1alice"}, domain.OBJKT_CONTRACT, 0, `{"token_id":"153"}`),
			expectedCreator: "tz1alice",
			expectedToken:   "153",
		},
		{
			name:            "falls back to sender",
			tx:              tx("tz1bob", nil, domain.OBJKT_CONTRACT, 0, `{"token_id":154}`),
			expectedCreator: "tz1bob",
			expectedToken:   "154",
		},
		{
			name:    "missing token id",
			tx:      tx("tz1bob", nil, domain.OBJKT_CONTRACT, 0, `{"address":"tz1bob"}`),
			wantErr: true,
		},
		{
			name:    "missing parameter",
			tx:      tx("tz1bob", nil, domain.OBJKT_CONTRACT, 0, ""),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mint, err := NormalizeMint(tt.tx)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCreator, mint.Creator)
			assert.Equal(t, tt.expectedToken, mint.TokenID)
			assert.Equal(t, "2021-03-15T10:00:00Z", mint.Timestamp)
		})
	}
}

func TestNormalizeCollect(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
		wantErr  bool
	}{
		{name: "bare string swap id", value: `"42"`, expected: "42"},
		{name: "bare numeric swap id", value: `42`, expected: "42"},
		{name: "object with swap id", value: `{"swap_id":"42","amount":"1"}`, expected: "42"},
		{name: "object without swap id", value: `{"amount":"1"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collect, err := NormalizeCollect(tx("tz1collector", nil, domain.TEIA_MARKETPLACE_CONTRACT, 5_000_000, tt.value))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, collect.SwapID)
			assert.Equal(t, "tz1collector", collect.Collector)
			assert.Equal(t, int64(5_000_000), collect.Amount)
			assert.Equal(t, domain.TEIA_MARKETPLACE_CONTRACT, collect.Marketplace)
		})
	}
}

func TestNormalizeSwap(t *testing.T) {
	swap, err := NormalizeSwap(tx("tz1seller", nil, domain.HEN_MARKETPLACE_CONTRACT, 0, `{"objkt_amount":"1","objkt_id":"7","xtz_per_objkt":"1000000"}`))
	require.NoError(t, err)
	assert.Equal(t, "tz1seller", swap.Seller)
	assert.Equal(t, "7", swap.TokenID)

	swap, err = NormalizeSwap(tx("tz1seller", nil, domain.TEIA_MARKETPLACE_CONTRACT, 0, `{"fa2":"KT1","token_id":"8"}`))
	require.NoError(t, err)
	assert.Equal(t, "8", swap.TokenID)

	_, err = NormalizeSwap(tx("tz1seller", nil, domain.TEIA_MARKETPLACE_CONTRACT, 0, `{"fa2":"KT1"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestNormalizeCancelSwap(t *testing.T) {
	cancel, err := NormalizeCancelSwap(tx("tz1seller", nil, domain.HEN_MARKETPLACE_CONTRACT, 0, `"99"`))
	require.NoError(t, err)
	assert.Equal(t, "99", cancel.SwapID)
	assert.Equal(t, "tz1seller", cancel.Sender)
}

func TestResolveCollect(t *testing.T) {
	swaps := map[string]domain.Swap{
		"10": {Issuer: "tz1seller", ObjktID: "1"},
		"11": {Issuer: "tz1seller", ObjktID: "2"},
	}
	royalties := map[string]domain.Royalty{
		"1": {Issuer: "tz1creator", Royalties: 100},
	}

	t.Run("resolves creator seller and amounts", func(t *testing.T) {
		resolved, err := ResolveCollect(Collect{SwapID: "10", Collector: "tz1collector", Amount: 100_000_000}, swaps, royalties)
		require.NoError(t, err)
		assert.Equal(t, "1", resolved.TokenID)
		assert.Equal(t, "tz1creator", resolved.Creator)
		assert.Equal(t, "tz1seller", resolved.Seller)
		assert.InDelta(t, 0.1, resolved.RoyaltyFraction, 1e-12)
		assert.InDelta(t, 100.0, resolved.PaidAmount, 1e-12)
		assert.Equal(t, []string{"tz1creator", "tz1seller", "tz1collector"}, resolved.Addresses())
	})

	t.Run("missing swap", func(t *testing.T) {
		_, err := ResolveCollect(Collect{SwapID: "404"}, swaps, royalties)
		assert.ErrorIs(t, err, domain.ErrSwapNotFound)
	})

	t.Run("missing royalty", func(t *testing.T) {
		_, err := ResolveCollect(Collect{SwapID: "11"}, swaps, royalties)
		assert.ErrorIs(t, err, domain.ErrRoyaltyNotFound)
	})

	t.Run("deduplicated addresses", func(t *testing.T) {
		resolved := ResolvedCollect{Creator: "tz1a", Seller: "tz1a", Collect: Collect{Collector: "tz1b"}}
		assert.Equal(t, []string{"tz1a", "tz1b"}, resolved.Addresses())
	})
}

func TestBuildBigmaps(t *testing.T) {
	t.Run("swaps and royalties", func(t *testing.T) {
		swaps := BuildSwaps([]domain.BigmapKey{
			{Key: json.RawMessage(`"5"`), Value: json.RawMessage(`{"issuer":"tz1seller","objkt_id":"3","objkt_amount":"2"}`)},
		})
		assert.Equal(t, domain.Swap{Issuer: "tz1seller", ObjktID: "3"}, swaps["5"])

		royalties := BuildRoyalties([]domain.BigmapKey{
			{Key: json.RawMessage(`"3"`), Value: json.RawMessage(`{"issuer":"tz1creator","royalties":"150"}`)},
		})
		assert.Equal(t, domain.Royalty{Issuer: "tz1creator", Royalties: 150}, royalties["3"])
	})

	t.Run("registries are hex decoded", func(t *testing.T) {
		registries := BuildRegistries([]domain.BigmapKey{
			{Key: json.RawMessage(`"tz1alice"`), Value: json.RawMessage(`"616c696365"`)},
		})
		assert.Equal(t, "alice", registries["tz1alice"])
	})

	t.Run("subjkts metadata keys and values are hex decoded", func(t *testing.T) {
		metadata := BuildSubjktsMetadata([]domain.BigmapKey{
			{Key: json.RawMessage(`"616c696365"`), Value: json.RawMessage(`"697066733a2f2f516d4d657461"`)},
			{Key: json.RawMessage(`"626f62"`), Value: json.RawMessage(`""`)},
		})
		assert.Equal(t, map[string]string{"alice": "ipfs://QmMeta", "bob": ""}, metadata)
	})

	t.Run("token balances with scalar and pair keys", func(t *testing.T) {
		balances := BuildTokenBalances([]domain.BigmapKey{
			{Key: json.RawMessage(`{"address":"tz1alice","nat":"0"}`), Value: json.RawMessage(`"2500000"`)},
			{Key: json.RawMessage(`"tz1bob"`), Value: json.RawMessage(`"1000000"`)},
		}, domain.HDAO_DECIMALS)
		assert.InDelta(t, 2.5, balances["tz1alice"], 1e-12)
		assert.InDelta(t, 1.0, balances["tz1bob"], 1e-12)
	})

	t.Run("votes", func(t *testing.T) {
		votes := BuildVotes([]domain.BigmapKey{
			{Key: json.RawMessage(`{"address":"tz1alice","string":"QmPoll"}`), Value: json.RawMessage(`"2"`)},
		})
		assert.Equal(t, []domain.Vote{{Address: "tz1alice", Poll: "QmPoll", Option: "2"}}, votes)
	})
}

func TestBuildCollaborations(t *testing.T) {
	collabs, err := BuildCollaborations([]domain.Origination{
		{
			ID:                 1,
			Timestamp:          "2021-06-01T00:00:00Z",
			OriginatedContract: &domain.Account{Address: "KT1Collab"},
			Storage:            json.RawMessage(`{"administrator":"tz1alice","coreParticipants":["tz1alice","tz1bob"],"shares":{"tz1alice":"600","tz1bob":"400"},"totalShares":"1000"}`),
		},
	})
	require.NoError(t, err)
	require.Len(t, collabs, 1)
	assert.Equal(t, "KT1Collab", collabs[0].Address)
	assert.Equal(t, []string{"tz1alice", "tz1bob"}, collabs[0].CoreParticipants)
	assert.Equal(t, map[string]int64{"tz1alice": 600, "tz1bob": 400}, collabs[0].Shares)
	assert.Equal(t, int64(1000), collabs[0].TotalShares)

	_, err = BuildCollaborations([]domain.Origination{{ID: 2}})
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestBuildSignatures(t *testing.T) {
	signatures, err := BuildSignatures([]domain.Transaction{
		tx("tz1alice", nil, domain.COLLAB_SIGNATURES_CONTRACT, 0, `"100"`),
		tx("tz1alice", nil, domain.COLLAB_SIGNATURES_CONTRACT, 0, `"101"`),
		tx("tz1bob", nil, domain.COLLAB_SIGNATURES_CONTRACT, 0, `"100"`),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "101"}, signatures["tz1alice"])
	assert.Equal(t, []string{"100"}, signatures["tz1bob"])
}

func TestHexToUTF8(t *testing.T) {
	assert.Equal(t, "teia", HexToUTF8("74656961"))
	assert.Equal(t, "", HexToUTF8("zz"))
	assert.Equal(t, "a�", HexToUTF8("61ff"))
}
