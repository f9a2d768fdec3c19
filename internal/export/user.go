package export

import (
	"github.com/teia-community/teia-analytics/internal/distribution"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/users"
)

// User is the flat users table record of a profile
type User struct {
	Address                   string
	ID                        int
	Username                  string
	Type                      domain.UserType
	Restricted                bool
	WashTrader                bool
	Verified                  bool
	HasProfile                bool
	Twitter                   string
	Discord                   string
	Github                    string
	TzktUsername              string
	TzprofilesUsername        string
	DomainUsername            string
	HenUsername               string
	HenMetadata               string
	TokenBalance              float64
	TokenBalanceLevel         uint64
	ContributionLevel         int
	FirstActivity             string
	LastActivity              string
	FirstMint                 string
	LastMint                  string
	FirstCollect              string
	LastCollect               string
	FirstSwap                 string
	LastSwap                  string
	ActiveDays                int
	PlatformActiveDays        int
	MintedCount               int
	CollectedCount            int
	SwappedCount              int
	MoneyEarnedOwn            float64
	MoneyEarnedOther          float64
	MoneyEarnedCollaborations float64
	MoneyEarned               float64
	MoneySpent                float64
	Collaborations            int
	ConnectionsToArtists      int
	ConnectionsToCollectors   int
	ConnectionCount           int
	VoteCount                 int
	VotedInPoll               bool
}

// FromProfile flattens a profile. poll selects the poll reported in the vote membership column.
func FromProfile(p *users.Profile, poll string) User {
	_, voted := p.Votes[poll]

	return User{
		Address:                   p.Address,
		ID:                        p.ID,
		Username:                  p.Username,
		Type:                      p.Type,
		Restricted:                p.Restricted,
		WashTrader:                p.WashTrader,
		Verified:                  p.Verified,
		HasProfile:                p.HasProfile,
		Twitter:                   p.Twitter,
		Discord:                   p.Discord,
		Github:                    p.Github,
		TzktUsername:              p.TzktUsername,
		TzprofilesUsername:        p.TzprofilesUsername,
		DomainUsername:            p.DomainUsername,
		HenUsername:               p.HenUsername,
		HenMetadata:               p.HenMetadata,
		TokenBalance:              p.TokenBalance,
		TokenBalanceLevel:         p.TokenBalanceLevel,
		ContributionLevel:         p.ContributionLevel,
		FirstActivity:             activityTimestamp(p.FirstActivity),
		LastActivity:              activityTimestamp(p.LastActivity),
		FirstMint:                 eventTimestamp(p.FirstMint),
		LastMint:                  eventTimestamp(p.LastMint),
		FirstCollect:              eventTimestamp(p.FirstCollect),
		LastCollect:               eventTimestamp(p.LastCollect),
		FirstSwap:                 eventTimestamp(p.FirstSwap),
		LastSwap:                  eventTimestamp(p.LastSwap),
		ActiveDays:                p.ActiveDays(),
		PlatformActiveDays:        p.PlatformActiveDays(),
		MintedCount:               len(p.MintedObjkts),
		CollectedCount:            len(p.CollectedObjkts),
		SwappedCount:              len(p.SwappedObjkts),
		MoneyEarnedOwn:            p.TotalMoneyEarnedOwnObjkts,
		MoneyEarnedOther:          p.TotalMoneyEarnedOtherObjkts,
		MoneyEarnedCollaborations: p.TotalMoneyEarnedCollaborations,
		MoneyEarned:               p.TotalMoneyEarned,
		MoneySpent:                p.TotalMoneySpent,
		Collaborations:            len(p.Collaborations),
		ConnectionsToArtists:      p.ConnectionsToArtists(),
		ConnectionsToCollectors:   p.ConnectionsToCollectors(),
		ConnectionCount:           p.ConnectionsToUsers(),
		VoteCount:                 p.VoteCount(),
		VotedInPoll:               voted,
	}
}

// FromRegistry flattens every profile of the registry in id order
func FromRegistry(reg *users.Registry, poll string) []User {
	profiles := reg.Profiles()
	rows := make([]User, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, FromProfile(p, poll))
	}
	return rows
}

// AllocationRow returns the allocation input of the user
func (u User) AllocationRow() distribution.Row {
	return distribution.Row{
		Address:            u.Address,
		Username:           u.Username,
		Type:               u.Type,
		Restricted:         u.Restricted,
		HasProfile:         u.HasProfile,
		Verified:           u.Verified,
		ActiveDays:         u.ActiveDays,
		PlatformActiveDays: u.PlatformActiveDays,
		VoteCount:          u.VoteCount,
		MintedCount:        u.MintedCount,
		CollectedCount:     u.CollectedCount,
		ConnectionCount:    u.ConnectionCount,
		MoneyEarnedOwn:     u.MoneyEarnedOwn,
		MoneySpent:         u.MoneySpent,
		ContributionLevel:  u.ContributionLevel,
		WashTrader:         u.WashTrader,
		TokenBalance:       u.TokenBalance,
	}
}

func activityTimestamp(a *users.Activity) string {
	if a == nil {
		return ""
	}
	return a.Timestamp
}

func eventTimestamp(e *users.Event) string {
	if e == nil {
		return ""
	}
	return e.Timestamp
}
