package domain

const (
	// Chain constants
	MUTEZ_PER_TEZ         = 1_000_000
	ROYALTIES_DENOMINATOR = 1000
	SITE_FEE_FRACTION     = 0.025

	// Address prefixes
	USER_ADDRESS_PREFIX     = "tz"
	CONTRACT_ADDRESS_PREFIX = "KT"

	// H=N and Teia contracts
	OBJKT_CONTRACT             = "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton"
	HEN_MINTER_CONTRACT        = "KT1Hkg5qeNhfwpKW4fXvq7HGZB9z2EnmCCA9"
	HEN_MARKETPLACE_CONTRACT   = "KT1HbQepzV1nVGg8QVznG7z4RcHseD5kwqBn"
	TEIA_MARKETPLACE_CONTRACT  = "KT1PHubm9HtyQEJ4BBpMTVomq6mhbfNZ9z5w"
	HEN_REGISTRIES_CONTRACT    = "KT1My1wDZHDGweCrJnQJi3wcFaS67iksirvj"
	HDAO_CONTRACT              = "KT1AFA2mwNUMNd4SsujE1YYp29vd8BZejyKW"
	COLLAB_FACTORY_CONTRACT    = "KT1DoyD6kr8yLK8mRBFusyKYJUk2ZxNHKP1N"
	COLLAB_SIGNATURES_CONTRACT = "KT1BcLnWRziLDNJNRn3phAANKrEBiXhytsMY"

	// Bigmap ids
	HEN_SWAPS_V1_BIGMAP         = 523
	HEN_SWAPS_V2_BIGMAP         = 6072
	HEN_ROYALTIES_BIGMAP        = 522
	HEN_REGISTRIES_BIGMAP       = 3919
	HEN_SUBJKTS_METADATA_BIGMAP = 3921
	TEIA_SWAPS_BIGMAP           = 90366
	HDAO_LEDGER_BIGMAP          = 515
	TEIA_VOTES_BIGMAP           = 64367

	// hDAO token decimals
	HDAO_DECIMALS = 1_000_000

	// Distributed token decimals
	TEIA_DECIMALS = 6

	// First day of H=N activity
	FIRST_ACTIVITY_DAY = "2021-03-01"
)
