package users

import (
	"sort"
	"time"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/records"
)

// Event references the token and timestamp of a mint, collect or swap
type Event struct {
	TokenID   string `json:"id"`
	Timestamp string `json:"timestamp"`
}

// Activity references the kind and timestamp of any event
type Activity struct {
	Kind      domain.ActivityKind `json:"type"`
	Timestamp string              `json:"timestamp"`
}

// Profile aggregates the marketplace activity and identity of one address.
// Event lists keep arrival order, extrema assume chronologically ordered batches.
type Profile struct {
	Address string
	ID      int

	// Identity
	Username           string
	DirectoryUsername  string
	TzktUsername       string
	TzprofilesUsername string
	DomainUsername     string
	HenUsername        string
	HenMetadata        string
	Twitter            string
	Discord            string
	Github             string
	Ethereum           string
	HasProfile         bool
	Verified           bool

	// Classification and flags
	Type       domain.UserType
	Restricted bool
	WashTrader bool

	// Activity extrema
	FirstActivity *Activity
	LastActivity  *Activity
	FirstMint     *Event
	LastMint      *Event
	FirstCollect  *Event
	LastCollect   *Event
	FirstSwap     *Event
	LastSwap      *Event

	// Event logs
	MintTimestamps             []string
	MintedObjkts               []string
	CollectTimestamps          []string
	CollectedObjkts            []string
	SwapTimestamps             []string
	SwappedObjkts              []string
	CancelSwapTimestamps       []string
	CancelledObjkts            []string
	PlatformActivityTimestamps []string

	// Money flows in tez
	MoneyEarnedOwnObjkts           []float64
	MoneyEarnedOtherObjkts         []float64
	MoneyEarnedCollaborations      []float64
	MoneySpent                     []float64
	TotalMoneyEarnedOwnObjkts      float64
	TotalMoneyEarnedOtherObjkts    float64
	TotalMoneyEarnedCollaborations float64
	TotalMoneyEarned               float64
	TotalMoneySpent                float64

	// Holdings and contributions
	TokenBalance      float64
	TokenBalanceLevel uint64
	ContributionLevel int

	// Connections keyed by peer address until compressed, by peer id afterwards
	ArtistConnections              map[string]int
	CollectorConnections           map[string]int
	CompressedArtistConnections    map[int]int
	CompressedCollectorConnections map[int]int
	compressed                     bool

	Collaborations []string
	Votes          map[string]string
}

// NewProfile creates an empty profile
func NewProfile(address string, id int) *Profile {
	return &Profile{
		Address:              address,
		ID:                   id,
		ArtistConnections:    make(map[string]int),
		CollectorConnections: make(map[string]int),
		Votes:                make(map[string]string),
	}
}

// IsContract checks if the profile belongs to a contract
func (p *Profile) IsContract() bool {
	return domain.IsContractAddress(p.Address)
}

// IsCompressed checks if the connections are keyed by peer id
func (p *Profile) IsCompressed() bool {
	return p.compressed
}

// AddMint applies a mint made by this profile
func (p *Profile) AddMint(mint records.Mint) {
	p.Type = domain.Promote(p.Type, domain.UserTypeArtist)
	p.updateActivity(domain.ActivityKindMint, mint.Timestamp)
	p.FirstMint, p.LastMint = updateExtrema(p.FirstMint, p.LastMint, mint.TokenID, mint.Timestamp)

	p.MintTimestamps = append(p.MintTimestamps, mint.Timestamp)
	p.MintedObjkts = append(p.MintedObjkts, mint.TokenID)
}

// AddCollect applies a resolved collect. The creator, seller and collector branches are independent
// and a single profile can take more than one role in the same collect.
func (p *Profile) AddCollect(collect records.ResolvedCollect, platform bool) {
	if p.Address == collect.Creator {
		p.Type = domain.Promote(p.Type, domain.UserTypeArtist)
		p.earnOwn(collect.PaidAmount * collect.RoyaltyFraction)
		p.CollectorConnections[collect.Collector]++
	}

	if p.Address == collect.Seller {
		p.Type = domain.Promote(p.Type, domain.UserTypeSwapper)
		earned := collect.PaidAmount * (1 - collect.RoyaltyFraction - domain.SITE_FEE_FRACTION)
		if p.Address == collect.Creator {
			p.earnOwn(earned)
		} else {
			p.MoneyEarnedOtherObjkts = append(p.MoneyEarnedOtherObjkts, earned)
			p.TotalMoneyEarnedOtherObjkts += earned
			p.TotalMoneyEarned += earned
		}
	}

	if p.Address == collect.Collector {
		p.Type = domain.Promote(p.Type, domain.UserTypePatron)
		p.updateActivity(domain.ActivityKindCollect, collect.Timestamp)
		p.FirstCollect, p.LastCollect = updateExtrema(p.FirstCollect, p.LastCollect, collect.TokenID, collect.Timestamp)

		p.CollectTimestamps = append(p.CollectTimestamps, collect.Timestamp)
		p.CollectedObjkts = append(p.CollectedObjkts, collect.TokenID)
		p.MoneySpent = append(p.MoneySpent, collect.PaidAmount)
		p.TotalMoneySpent += collect.PaidAmount
		p.ArtistConnections[collect.Creator]++

		if platform {
			p.PlatformActivityTimestamps = append(p.PlatformActivityTimestamps, collect.Timestamp)
		}
	}
}

// AddSwap applies a swap offered by this profile
func (p *Profile) AddSwap(swap records.Swap, platform bool) {
	p.Type = domain.Promote(p.Type, domain.UserTypeSwapper)
	p.updateActivity(domain.ActivityKindSwap, swap.Timestamp)
	p.FirstSwap, p.LastSwap = updateExtrema(p.FirstSwap, p.LastSwap, swap.TokenID, swap.Timestamp)

	p.SwapTimestamps = append(p.SwapTimestamps, swap.Timestamp)
	p.SwappedObjkts = append(p.SwappedObjkts, swap.TokenID)

	if platform {
		p.PlatformActivityTimestamps = append(p.PlatformActivityTimestamps, swap.Timestamp)
	}
}

// AddCancelSwap applies a cancelled swap of the given token. It counts as swap activity
// but is logged apart from the swapped tokens.
func (p *Profile) AddCancelSwap(cancel records.CancelSwap, tokenID string, platform bool) {
	p.Type = domain.Promote(p.Type, domain.UserTypeSwapper)
	p.updateActivity(domain.ActivityKindCancelSwap, cancel.Timestamp)
	p.FirstSwap, p.LastSwap = updateExtrema(p.FirstSwap, p.LastSwap, tokenID, cancel.Timestamp)

	p.CancelSwapTimestamps = append(p.CancelSwapTimestamps, cancel.Timestamp)
	p.CancelledObjkts = append(p.CancelledObjkts, tokenID)

	if platform {
		p.PlatformActivityTimestamps = append(p.PlatformActivityTimestamps, cancel.Timestamp)
	}
}

// SetTokenBalance stores a token balance snapshot taken at the given level
func (p *Profile) SetTokenBalance(balance float64, level uint64) {
	p.Type = domain.Promote(p.Type, domain.UserTypeTokenHolder)
	p.TokenBalance = balance
	p.TokenBalanceLevel = level
}

// SetContributionLevel stores the contribution level, contributors without activity are typed as such
func (p *Profile) SetContributionLevel(level int) {
	p.ContributionLevel = level
	if level > 0 {
		p.Type = domain.Promote(p.Type, domain.UserTypeContributor)
	}
}

// AddCollaboration credits this profile with the collaboration mints it signed and its share of
// the collaboration earnings. It returns true when at least one signed token was minted by the collaboration.
func (p *Profile) AddCollaboration(collab domain.Collaboration, signed []string, collabProfile *Profile) bool {
	if collabProfile == nil || !collab.HasCoreParticipant(p.Address) {
		return false
	}

	signedSet := make(map[string]bool, len(signed))
	for _, tokenID := range signed {
		signedSet[tokenID] = true
	}
	owned := make(map[string]bool, len(p.MintedObjkts))
	for _, tokenID := range p.MintedObjkts {
		owned[tokenID] = true
	}

	minted := false
	for i, tokenID := range collabProfile.MintedObjkts {
		if !signedSet[tokenID] {
			continue
		}
		minted = true
		if owned[tokenID] {
			continue
		}
		owned[tokenID] = true
		p.AddMint(records.Mint{
			Creator:   collab.Address,
			TokenID:   tokenID,
			Timestamp: collabProfile.MintTimestamps[i],
		})
	}

	if collab.TotalShares > 0 {
		share := float64(collab.Shares[p.Address]) / float64(collab.TotalShares) * collabProfile.TotalMoneyEarnedOwnObjkts
		if share != 0 {
			p.MoneyEarnedCollaborations = append(p.MoneyEarnedCollaborations, share)
			p.TotalMoneyEarnedCollaborations += share
			p.TotalMoneyEarned += share
		}
	}

	if minted {
		p.Collaborations = append(p.Collaborations, collab.Address)
	}

	return minted
}

// ActiveDays returns the number of distinct UTC days with a mint, collect, swap or cancelled swap
func (p *Profile) ActiveDays() int {
	return len(Days(p.MintTimestamps, p.CollectTimestamps, p.SwapTimestamps, p.CancelSwapTimestamps))
}

// PlatformActiveDays returns the number of distinct UTC days with activity on the platform marketplace
func (p *Profile) PlatformActiveDays() int {
	return len(Days(p.PlatformActivityTimestamps))
}

// ConnectionsToArtists returns the number of distinct creators this profile collected from
func (p *Profile) ConnectionsToArtists() int {
	if p.compressed {
		return len(p.CompressedArtistConnections)
	}
	return len(p.ArtistConnections)
}

// ConnectionsToCollectors returns the number of distinct collectors of this profile creations
func (p *Profile) ConnectionsToCollectors() int {
	if p.compressed {
		return len(p.CompressedCollectorConnections)
	}
	return len(p.CollectorConnections)
}

// ConnectionsToUsers returns the number of distinct peers in either role
func (p *Profile) ConnectionsToUsers() int {
	if p.compressed {
		return unionSize(p.CompressedArtistConnections, p.CompressedCollectorConnections)
	}
	return unionSize(p.ArtistConnections, p.CollectorConnections)
}

// VoteCount returns the number of polls the profile voted in
func (p *Profile) VoteCount() int {
	return len(p.Votes)
}

// Days returns the sorted distinct UTC days of the given timestamps
func Days(timestampLists ...[]string) []string {
	seen := make(map[string]bool)
	for _, timestamps := range timestampLists {
		for _, timestamp := range timestamps {
			seen[Day(timestamp)] = true
		}
	}

	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Day returns the UTC day of an ISO-8601 timestamp in YYYY-MM-DD form
func Day(timestamp string) string {
	if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
		return t.UTC().Format(time.DateOnly)
	}
	if len(timestamp) >= len(time.DateOnly) {
		return timestamp[:len(time.DateOnly)]
	}
	return timestamp
}

func (p *Profile) earnOwn(amount float64) {
	p.MoneyEarnedOwnObjkts = append(p.MoneyEarnedOwnObjkts, amount)
	p.TotalMoneyEarnedOwnObjkts += amount
	p.TotalMoneyEarned += amount
}

func (p *Profile) updateActivity(kind domain.ActivityKind, timestamp string) {
	if p.FirstActivity == nil || timestamp < p.FirstActivity.Timestamp {
		p.FirstActivity = &Activity{Kind: kind, Timestamp: timestamp}
	}
	if p.LastActivity == nil || timestamp > p.LastActivity.Timestamp {
		p.LastActivity = &Activity{Kind: kind, Timestamp: timestamp}
	}
}

// updateExtrema applies a strict running min/max on the ISO-8601 timestamp
func updateExtrema(first, last *Event, tokenID, timestamp string) (*Event, *Event) {
	if first == nil || timestamp < first.Timestamp {
		first = &Event{TokenID: tokenID, Timestamp: timestamp}
	}
	if last == nil || timestamp > last.Timestamp {
		last = &Event{TokenID: tokenID, Timestamp: timestamp}
	}
	return first, last
}

func unionSize[K comparable](a, b map[K]int) int {
	n := len(a)
	for k := range b {
		if _, ok := a[k]; !ok {
			n++
		}
	}
	return n
}
