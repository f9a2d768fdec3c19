package users

import (
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/types"
)

// IdentitySources holds the off-chain identity data keyed by address
type IdentitySources struct {
	// Directory is an external address to username directory
	Directory map[string]string
	// Wallets are the TzKT accounts, with optional aliases
	Wallets map[string]domain.Wallet
	// TzProfiles are the tzprofiles records
	TzProfiles map[string]domain.TzProfile
	// Domains maps addresses to their reverse Tezos domain
	Domains map[string]string
	// Registries are the decoded H=N registry names
	Registries map[string]string
	// SubjktsMetadata maps H=N registry names to their metadata uri
	SubjktsMetadata map[string]string
}

// SetIdentity resolves the usernames, social handles and verification flags.
// Sources are applied from lowest to highest precedence and empty values never override.
func (p *Profile) SetIdentity(src IdentitySources) {
	p.DirectoryUsername = src.Directory[p.Address]
	p.overrideUsername(p.DirectoryUsername)

	if wallet, ok := src.Wallets[p.Address]; ok {
		p.TzktUsername = wallet.Alias
		p.overrideUsername(p.TzktUsername)
	}

	if profile, ok := src.TzProfiles[p.Address]; ok {
		p.HasProfile = true
		p.TzprofilesUsername = types.SafeString(profile.Alias)
		p.Twitter = types.SafeString(profile.Twitter)
		p.Discord = types.SafeString(profile.Discord)
		p.Github = types.SafeString(profile.Github)
		p.Ethereum = types.SafeString(profile.Ethereum)
		p.Verified = !types.StringNilOrEmpty(profile.Twitter) || !types.StringNilOrEmpty(profile.Discord) || !types.StringNilOrEmpty(profile.Github)
		p.overrideUsername(p.TzprofilesUsername)

		if p.DomainUsername == "" {
			p.DomainUsername = types.SafeString(profile.DomainName)
		}
	}

	if name := src.Domains[p.Address]; name != "" {
		p.DomainUsername = name
	}
	p.overrideUsername(p.DomainUsername)

	p.HenUsername = src.Registries[p.Address]
	p.overrideUsername(p.HenUsername)
	if p.HenUsername != "" {
		p.HenMetadata = src.SubjktsMetadata[p.HenUsername]
	}
}

func (p *Profile) overrideUsername(username string) {
	if username != "" {
		p.Username = username
	}
}
