package users

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/records"
)

// Options configures a registry
type Options struct {
	// PlatformContracts are the marketplace contracts whose activity counts as platform activity
	PlatformContracts []string
	// CheckOrder rejects batches that are not chronologically ordered
	CheckOrder bool
}

// Registry owns every profile keyed by address, with ids assigned in first-seen order.
// A selection keeps a pointer to its root registry, which owns the id counter.
type Registry struct {
	mu         sync.Mutex
	root       *Registry
	profiles   map[string]*Profile
	ids        map[int]string
	order      []string
	nextID     int
	platform   map[string]bool
	options    Options
	compressed bool
}

// NewRegistry creates an empty registry
func NewRegistry(opts Options) *Registry {
	platform := make(map[string]bool, len(opts.PlatformContracts))
	for _, contract := range opts.PlatformContracts {
		platform[contract] = true
	}

	return &Registry{
		profiles: make(map[string]*Profile),
		ids:      make(map[int]string),
		platform: platform,
		options:  opts,
	}
}

// GetOrCreate returns the profile of the address, creating it with the next id when absent.
// On a selection the profile is created in the root registry and added to the selection.
func (r *Registry) GetOrCreate(address string) *Profile {
	if r.root != nil {
		profile := r.root.GetOrCreate(address)

		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.profiles[address]; !ok {
			r.add(profile)
		}
		return profile
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if profile, ok := r.profiles[address]; ok {
		return profile
	}

	profile := NewProfile(address, r.nextID)
	profile.compressed = r.compressed
	if r.compressed {
		profile.CompressedArtistConnections = make(map[int]int)
		profile.CompressedCollectorConnections = make(map[int]int)
		profile.ArtistConnections = nil
		profile.CollectorConnections = nil
	}
	r.add(profile)
	r.nextID++

	return profile
}

func (r *Registry) add(profile *Profile) {
	r.profiles[profile.Address] = profile
	r.ids[profile.ID] = profile.Address
	r.order = append(r.order, profile.Address)
}

// Get returns the profile of the address
func (r *Registry) Get(address string) (*Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[address]
	return profile, ok
}

// GetByID returns the profile with the given id
func (r *Registry) GetByID(id int) (*Profile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	address, ok := r.ids[id]
	if !ok {
		return nil, false
	}
	return r.profiles[address], true
}

// Len returns the number of profiles
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.profiles)
}

// Profiles returns the profiles in id order
func (r *Registry) Profiles() []*Profile {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles := make([]*Profile, 0, len(r.order))
	for _, address := range r.order {
		profiles = append(profiles, r.profiles[address])
	}
	return profiles
}

// Addresses returns the addresses in id order
func (r *Registry) Addresses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.order...)
}

// IsCompressed checks if the connections have been compressed to ids
func (r *Registry) IsCompressed() bool {
	if r.root != nil {
		return r.root.IsCompressed()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.compressed
}

// IsPlatform checks if the marketplace contract is one of the platform contracts
func (r *Registry) IsPlatform(marketplace string) bool {
	return r.platform[marketplace]
}

// IngestMints applies mint transactions to their creators
func (r *Registry) IngestMints(txs []domain.Transaction) error {
	if err := r.checkIngest(txs); err != nil {
		return err
	}

	for _, tx := range txs {
		mint, err := records.NormalizeMint(tx)
		if err != nil {
			return fmt.Errorf("failed to normalize mint: %w", err)
		}
		r.GetOrCreate(mint.Creator).AddMint(mint)
	}

	logger.Debug("Ingested mints", zap.Int("transactions", len(txs)), zap.Int("profiles", r.Len()))
	return nil
}

// IngestCollects applies collect transactions to their creators, sellers and collectors.
// Every involved profile is created before the collect is applied to any of them.
func (r *Registry) IngestCollects(txs []domain.Transaction, swaps map[string]domain.Swap, royalties map[string]domain.Royalty) error {
	if err := r.checkIngest(txs); err != nil {
		return err
	}

	for _, tx := range txs {
		collect, err := records.NormalizeCollect(tx)
		if err != nil {
			return fmt.Errorf("failed to normalize collect: %w", err)
		}

		resolved, err := records.ResolveCollect(collect, swaps, royalties)
		if err != nil {
			return fmt.Errorf("failed to resolve collect %d: %w", tx.ID, err)
		}

		addresses := resolved.Addresses()
		profiles := make([]*Profile, 0, len(addresses))
		for _, address := range addresses {
			profiles = append(profiles, r.GetOrCreate(address))
		}

		platform := r.IsPlatform(resolved.Marketplace)
		for _, profile := range profiles {
			profile.AddCollect(resolved, platform)
		}
	}

	logger.Debug("Ingested collects", zap.Int("transactions", len(txs)), zap.Int("profiles", r.Len()))
	return nil
}

// IngestSwaps applies swap transactions to their sellers
func (r *Registry) IngestSwaps(txs []domain.Transaction) error {
	if err := r.checkIngest(txs); err != nil {
		return err
	}

	for _, tx := range txs {
		swap, err := records.NormalizeSwap(tx)
		if err != nil {
			return fmt.Errorf("failed to normalize swap: %w", err)
		}
		r.GetOrCreate(swap.Seller).AddSwap(swap, r.IsPlatform(swap.Marketplace))
	}

	logger.Debug("Ingested swaps", zap.Int("transactions", len(txs)), zap.Int("profiles", r.Len()))
	return nil
}

// IngestCancelSwaps applies cancel_swap transactions, resolving the token through the swaps bigmap
func (r *Registry) IngestCancelSwaps(txs []domain.Transaction, swaps map[string]domain.Swap) error {
	if err := r.checkIngest(txs); err != nil {
		return err
	}

	for _, tx := range txs {
		cancel, err := records.NormalizeCancelSwap(tx)
		if err != nil {
			return fmt.Errorf("failed to normalize cancel swap: %w", err)
		}

		swap, ok := swaps[cancel.SwapID]
		if !ok {
			return fmt.Errorf("failed to resolve cancel swap %d: %w: swap id %s", tx.ID, domain.ErrSwapNotFound, cancel.SwapID)
		}
		r.GetOrCreate(cancel.Sender).AddCancelSwap(cancel, swap.ObjktID, r.IsPlatform(cancel.Marketplace))
	}

	logger.Debug("Ingested cancel swaps", zap.Int("transactions", len(txs)), zap.Int("profiles", r.Len()))
	return nil
}

// IngestTokenBalances applies a token balance snapshot taken at the given level. Holders are visited in address order.
func (r *Registry) IngestTokenBalances(balances map[string]float64, level uint64) {
	addresses := make([]string, 0, len(balances))
	for address, balance := range balances {
		if balance > 0 {
			addresses = append(addresses, address)
		}
	}
	sort.Strings(addresses)

	for _, address := range addresses {
		r.GetOrCreate(address).SetTokenBalance(balances[address], level)
	}

	logger.Debug("Ingested token balances", zap.Int("holders", len(addresses)), zap.Uint64("level", level))
}

// EnrichIdentity resolves the identity of every profile
func (r *Registry) EnrichIdentity(src IdentitySources) {
	for _, profile := range r.Profiles() {
		profile.SetIdentity(src)
	}
}

// SetRestricted flags the profiles in the restricted list and clears the others
func (r *Registry) SetRestricted(addresses []string) {
	restricted := toSet(addresses)
	for _, profile := range r.Profiles() {
		profile.Restricted = restricted[profile.Address]
	}
}

// SetWashTraders flags the profiles in the wash traders list and clears the others
func (r *Registry) SetWashTraders(addresses []string) {
	washTraders := toSet(addresses)
	for _, profile := range r.Profiles() {
		profile.WashTrader = washTraders[profile.Address]
	}
}

// SetContributionLevels sets the contribution level of the existing profiles
func (r *Registry) SetContributionLevels(levels map[string]int) {
	for _, profile := range r.Profiles() {
		if level, ok := levels[profile.Address]; ok {
			profile.SetContributionLevel(level)
		}
	}
}

// IngestVotes records the votes of existing profiles in the allowed polls
func (r *Registry) IngestVotes(votes []domain.Vote, allowedPolls []string) {
	allowed := toSet(allowedPolls)
	recorded := 0
	for _, vote := range votes {
		if !allowed[vote.Poll] {
			continue
		}
		profile, ok := r.Get(vote.Address)
		if !ok {
			continue
		}
		profile.Votes[vote.Poll] = vote.Option
		recorded++
	}

	logger.Debug("Ingested votes", zap.Int("votes", len(votes)), zap.Int("recorded", recorded))
}

// IngestCollaborations fans the collaboration mints and earnings out to their core participants.
// Only participants who signed at least one token minted by the collaboration are credited,
// whether or not they already have a profile. It must run after every collect has been ingested.
func (r *Registry) IngestCollaborations(collabs []domain.Collaboration, signatures map[string][]string) {
	for _, collab := range collabs {
		collabProfile, ok := r.Get(collab.Address)
		if !ok {
			continue
		}
		collabProfile.Type = domain.Promote(collabProfile.Type, domain.UserTypeCollaboration)

		for _, participant := range collab.CoreParticipants {
			if !signedAny(collabProfile.MintedObjkts, signatures[participant]) {
				continue
			}
			r.GetOrCreate(participant).AddCollaboration(collab, signatures[participant], collabProfile)
		}
	}

	logger.Debug("Ingested collaborations", zap.Int("collaborations", len(collabs)))
}

// CompressConnections re-keys every connection map by peer id, creating profiles for unseen peers.
// Peers are visited in address order so the ids of created profiles are deterministic.
func (r *Registry) CompressConnections() {
	if r.root != nil {
		r.root.CompressConnections()
		return
	}
	if r.IsCompressed() {
		return
	}

	for _, profile := range r.Profiles() {
		profile.CompressedArtistConnections = r.compress(profile.ArtistConnections)
		profile.CompressedCollectorConnections = r.compress(profile.CollectorConnections)
		profile.ArtistConnections = nil
		profile.CollectorConnections = nil
		profile.compressed = true
	}

	r.mu.Lock()
	r.compressed = true
	for _, profile := range r.profiles {
		if !profile.compressed {
			profile.CompressedArtistConnections = make(map[int]int)
			profile.CompressedCollectorConnections = make(map[int]int)
			profile.ArtistConnections = nil
			profile.CollectorConnections = nil
			profile.compressed = true
		}
	}
	r.mu.Unlock()

	logger.Debug("Compressed connections", zap.Int("profiles", r.Len()))
}

func (r *Registry) compress(connections map[string]int) map[int]int {
	peers := make([]string, 0, len(connections))
	for peer := range connections {
		peers = append(peers, peer)
	}
	sort.Strings(peers)

	compressed := make(map[int]int, len(connections))
	for _, peer := range peers {
		compressed[r.GetOrCreate(peer).ID] = connections[peer]
	}
	return compressed
}

func (r *Registry) checkIngest(txs []domain.Transaction) error {
	if r.IsCompressed() {
		return domain.ErrConnectionsCompressed
	}
	if !r.options.CheckOrder {
		return nil
	}
	return CheckChronological(txs)
}

// CheckChronological checks that the transactions are sorted by timestamp
func CheckChronological(txs []domain.Transaction) error {
	for i := 1; i < len(txs); i++ {
		if txs[i].Timestamp < txs[i-1].Timestamp {
			return fmt.Errorf("%w: transaction %d at %s follows %s", domain.ErrUnorderedBatch, txs[i].ID, txs[i].Timestamp, txs[i-1].Timestamp)
		}
	}
	return nil
}

func signedAny(minted, signed []string) bool {
	signedSet := toSet(signed)
	for _, tokenID := range minted {
		if signedSet[tokenID] {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, value := range values {
		set[value] = true
	}
	return set
}
