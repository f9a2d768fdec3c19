package domain

import (
	"encoding/json"
	"strings"
)

// UserType represents the classification of a user
type UserType string

const (
	UserTypeUnset         UserType = ""
	UserTypeTokenHolder   UserType = "hdao_owner"
	UserTypeContributor   UserType = "contributor"
	UserTypeSwapper       UserType = "swapper"
	UserTypePatron        UserType = "patron"
	UserTypeArtist        UserType = "artist"
	UserTypeCollaboration UserType = "collaboration"
)

// userTypeRanks is the single source of classification precedence
var userTypeRanks = map[UserType]int{
	UserTypeUnset:         0,
	UserTypeTokenHolder:   1,
	UserTypeContributor:   2,
	UserTypeSwapper:       3,
	UserTypePatron:        4,
	UserTypeArtist:        5,
	UserTypeCollaboration: 6,
}

// Rank returns the precedence of the user type, unknown types rank as unset
func (t UserType) Rank() int {
	return userTypeRanks[t]
}

// IsValidUserType checks if a user type is part of the closed vocabulary
func IsValidUserType(t UserType) bool {
	_, ok := userTypeRanks[t]
	return ok
}

// Promote returns the type with the higher precedence. A type is never demoted.
func Promote(current, candidate UserType) UserType {
	if candidate.Rank() > current.Rank() {
		return candidate
	}
	return current
}

// IsUserAddress checks if an address belongs to an implicit (user) account
func IsUserAddress(address string) bool {
	return strings.HasPrefix(address, USER_ADDRESS_PREFIX)
}

// IsContractAddress checks if an address belongs to an originated contract
func IsContractAddress(address string) bool {
	return strings.HasPrefix(address, CONTRACT_ADDRESS_PREFIX)
}

// ActivityKind represents the kind of event that updated a user
type ActivityKind string

const (
	ActivityKindMint       ActivityKind = "mint"
	ActivityKindCollect    ActivityKind = "collect"
	ActivityKindSwap       ActivityKind = "swap"
	ActivityKindCancelSwap ActivityKind = "cancel_swap"
)

// Account is an address reference embedded in TzKT operations
type Account struct {
	Address string `json:"address"`
	Alias   string `json:"alias,omitempty"`
}

// Parameter is the entrypoint call of a transaction. Value is either a scalar or an object.
type Parameter struct {
	Entrypoint string          `json:"entrypoint"`
	Value      json.RawMessage `json:"value"`
}

// Transaction represents a transaction from the TzKT API
type Transaction struct {
	ID        uint64     `json:"id"`
	Level     uint64     `json:"level"`
	Timestamp string     `json:"timestamp"`
	Hash      string     `json:"hash,omitempty"`
	Sender    Account    `json:"sender"`
	Initiator *Account   `json:"initiator,omitempty"`
	Target    Account    `json:"target"`
	Amount    int64      `json:"amount"`
	Parameter *Parameter `json:"parameter,omitempty"`
}

// Origination represents a contract origination from the TzKT API
type Origination struct {
	ID                 uint64          `json:"id"`
	Level              uint64          `json:"level"`
	Timestamp          string          `json:"timestamp"`
	Initiator          *Account        `json:"initiator,omitempty"`
	OriginatedContract *Account        `json:"originatedContract,omitempty"`
	Storage            json.RawMessage `json:"storage"`
}

// BigmapKey represents a bigmap key from the TzKT API. Key is either a scalar or an object.
type BigmapKey struct {
	ID         uint64          `json:"id"`
	Active     bool            `json:"active"`
	Hash       string          `json:"hash"`
	Key        json.RawMessage `json:"key"`
	Value      json.RawMessage `json:"value"`
	FirstLevel uint64          `json:"firstLevel"`
	LastLevel  uint64          `json:"lastLevel"`
	Updates    int             `json:"updates"`
}

// Wallet represents an account from the TzKT API
type Wallet struct {
	Type              string `json:"type"`
	Address           string `json:"address"`
	Alias             string `json:"alias,omitempty"`
	Balance           int64  `json:"balance"`
	FirstActivityTime string `json:"firstActivityTime,omitempty"`
	LastActivityTime  string `json:"lastActivityTime,omitempty"`
}

// TzProfile represents a profile from the tzprofiles index
type TzProfile struct {
	Account     string  `json:"account"`
	Contract    string  `json:"contract"`
	Alias       *string `json:"alias"`
	Description *string `json:"description"`
	Discord     *string `json:"discord"`
	DomainName  *string `json:"domain_name"`
	Ethereum    *string `json:"ethereum"`
	Github      *string `json:"github"`
	Logo        *string `json:"logo"`
	Twitter     *string `json:"twitter"`
	Website     *string `json:"website"`
}

// DomainRecord is a reverse record of the Tezos domains registry
type DomainRecord struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Swap is a value of a marketplace swaps bigmap
type Swap struct {
	Issuer  string `json:"issuer"`
	ObjktID string `json:"objkt_id"`
}

// Royalty is a value of the minter royalties bigmap
type Royalty struct {
	Issuer    string `json:"issuer"`
	Royalties int64  `json:"royalties"`
}

// Collaboration is an originated collaboration contract
type Collaboration struct {
	Address          string           `json:"address"`
	Timestamp        string           `json:"timestamp"`
	Administrator    string           `json:"administrator"`
	CoreParticipants []string         `json:"core_participants"`
	Shares           map[string]int64 `json:"shares"`
	TotalShares      int64            `json:"total_shares"`
}

// HasCoreParticipant checks if the address is a core participant of the collaboration
func (c Collaboration) HasCoreParticipant(address string) bool {
	for _, participant := range c.CoreParticipants {
		if participant == address {
			return true
		}
	}
	return false
}

// Vote is a single poll vote
type Vote struct {
	Address string `json:"address"`
	Poll    string `json:"poll"`
	Option  string `json:"option"`
}
