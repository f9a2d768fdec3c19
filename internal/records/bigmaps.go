package records

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/teia-community/teia-analytics/internal/domain"
)

// BuildSwaps builds a swaps bigmap keyed by swap id. Later keys override earlier ones.
func BuildSwaps(keys []domain.BigmapKey) map[string]domain.Swap {
	swaps := make(map[string]domain.Swap, len(keys))
	for _, key := range keys {
		value := gjson.ParseBytes(key.Value)
		swaps[scalarKey(key)] = domain.Swap{
			Issuer:  value.Get("issuer").String(),
			ObjktID: value.Get("objkt_id").String(),
		}
	}
	return swaps
}

// BuildRoyalties builds the royalties bigmap keyed by token id
func BuildRoyalties(keys []domain.BigmapKey) map[string]domain.Royalty {
	royalties := make(map[string]domain.Royalty, len(keys))
	for _, key := range keys {
		value := gjson.ParseBytes(key.Value)
		royalties[scalarKey(key)] = domain.Royalty{
			Issuer:    value.Get("issuer").String(),
			Royalties: value.Get("royalties").Int(),
		}
	}
	return royalties
}

// BuildRegistries builds the marketplace registry of address to decoded user name
func BuildRegistries(keys []domain.BigmapKey) map[string]string {
	registries := make(map[string]string, len(keys))
	for _, key := range keys {
		registries[scalarKey(key)] = HexToUTF8(gjson.ParseBytes(key.Value).String())
	}
	return registries
}

// BuildSubjktsMetadata builds the subjkt metadata bigmap of decoded subjkt name to decoded metadata uri
func BuildSubjktsMetadata(keys []domain.BigmapKey) map[string]string {
	metadata := make(map[string]string, len(keys))
	for _, key := range keys {
		metadata[HexToUTF8(scalarKey(key))] = HexToUTF8(gjson.ParseBytes(key.Value).String())
	}
	return metadata
}

// BuildTokenBalances builds a token ledger of address to balance.
// Keys are either the owner address or an {address, nat} pair, and amounts are divided by decimals.
func BuildTokenBalances(keys []domain.BigmapKey, decimals float64) map[string]float64 {
	if decimals <= 0 {
		decimals = 1
	}

	balances := make(map[string]float64, len(keys))
	for _, key := range keys {
		k := gjson.ParseBytes(key.Key)
		address := k.String()
		if k.IsObject() {
			address = k.Get("address").String()
		}
		if address == "" {
			continue
		}
		balances[address] += gjson.ParseBytes(key.Value).Float() / decimals
	}
	return balances
}

// BuildVotes builds the votes of the community polls bigmap keyed by {address, string}
func BuildVotes(keys []domain.BigmapKey) []domain.Vote {
	votes := make([]domain.Vote, 0, len(keys))
	for _, key := range keys {
		k := gjson.ParseBytes(key.Key)
		votes = append(votes, domain.Vote{
			Address: k.Get("address").String(),
			Poll:    k.Get("string").String(),
			Option:  gjson.ParseBytes(key.Value).String(),
		})
	}
	return votes
}

// BuildCollaborations builds the collaboration contracts from the factory originations
func BuildCollaborations(originations []domain.Origination) ([]domain.Collaboration, error) {
	collabs := make([]domain.Collaboration, 0, len(originations))
	for _, origination := range originations {
		if origination.OriginatedContract == nil {
			return nil, fmt.Errorf("%w: origination %d has no originated contract", domain.ErrInvalidRecord, origination.ID)
		}

		storage := gjson.ParseBytes(origination.Storage)
		collab := domain.Collaboration{
			Address:       origination.OriginatedContract.Address,
			Timestamp:     origination.Timestamp,
			Administrator: storage.Get("administrator").String(),
			Shares:        make(map[string]int64),
			TotalShares:   storage.Get("totalShares").Int(),
		}

		for _, participant := range storage.Get("coreParticipants").Array() {
			collab.CoreParticipants = append(collab.CoreParticipants, participant.String())
		}

		storage.Get("shares").ForEach(func(address, shares gjson.Result) bool {
			collab.Shares[address.String()] = shares.Int()
			return true
		})

		collabs = append(collabs, collab)
	}
	return collabs, nil
}

// BuildSignatures builds the token ids signed by each address from the sign transactions
func BuildSignatures(txs []domain.Transaction) (map[string][]string, error) {
	signatures := make(map[string][]string)
	for _, tx := range txs {
		value, err := parameterValue(tx)
		if err != nil {
			return nil, err
		}

		tokenID, ok := scalarOrField(value, "token_id")
		if !ok {
			return nil, fmt.Errorf("%w: signature %d has no token id", domain.ErrInvalidRecord, tx.ID)
		}

		address := tx.Sender.Address
		signatures[address] = append(signatures[address], tokenID)
	}
	return signatures, nil
}

// HexToUTF8 decodes a hex encoded UTF-8 string, replacing invalid sequences
func HexToUTF8(s string) string {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(bytes.ToValidUTF8(decoded, []byte("�")))
}

func scalarKey(key domain.BigmapKey) string {
	return gjson.ParseBytes(key.Key).String()
}
