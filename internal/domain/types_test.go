package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromote(t *testing.T) {
	tests := []struct {
		name      string
		current   UserType
		candidate UserType
		expected  UserType
	}{
		{
			name:      "unset becomes swapper",
			current:   UserTypeUnset,
			candidate: UserTypeSwapper,
			expected:  UserTypeSwapper,
		},
		{
			name:      "artist is not downgraded to patron",
			current:   UserTypeArtist,
			candidate: UserTypePatron,
			expected:  UserTypeArtist,
		},
		{
			name:      "patron is not downgraded to swapper",
			current:   UserTypePatron,
			candidate: UserTypeSwapper,
			expected:  UserTypePatron,
		},
		{
			name:      "swapper becomes patron",
			current:   UserTypeSwapper,
			candidate: UserTypePatron,
			expected:  UserTypePatron,
		},
		{
			name:      "token holder becomes artist",
			current:   UserTypeTokenHolder,
			candidate: UserTypeArtist,
			expected:  UserTypeArtist,
		},
		{
			name:      "token holder only applies to unset",
			current:   UserTypeContributor,
			candidate: UserTypeTokenHolder,
			expected:  UserTypeContributor,
		},
		{
			name:      "collaboration beats artist",
			current:   UserTypeArtist,
			candidate: UserTypeCollaboration,
			expected:  UserTypeCollaboration,
		},
		{
			name:      "same type is kept",
			current:   UserTypeArtist,
			candidate: UserTypeArtist,
			expected:  UserTypeArtist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Promote(tt.current, tt.candidate))
		})
	}
}

func TestIsValidUserType(t *testing.T) {
	assert.True(t, IsValidUserType(UserTypeUnset))
	assert.True(t, IsValidUserType(UserTypeCollaboration))
	assert.False(t, IsValidUserType(UserType("collector")))
}

func TestAddressClasses(t *testing.T) {
	tests := []struct {
		name       string
		address    string
		isUser     bool
		isContract bool
	}{
		{
			name:       "tz1 address",
			address:    "tz1g6JRCpsEnD2BLiAzPNK3GBD1fKicV9rCx",
			isUser:     true,
			isContract: false,
		},
		{
			name:       "tz2 address",
			address:    "tz2FCNBrERXtaTtNX6iimR1UJ5JSDxvdHM93",
			isUser:     true,
			isContract: false,
		},
		{
			name:       "contract address",
			address:    OBJKT_CONTRACT,
			isUser:     false,
			isContract: true,
		},
		{
			name:       "empty address",
			address:    "",
			isUser:     false,
			isContract: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isUser, IsUserAddress(tt.address))
			assert.Equal(t, tt.isContract, IsContractAddress(tt.address))
		})
	}
}

func TestCollaboration_HasCoreParticipant(t *testing.T) {
	collab := Collaboration{
		Address:          "KT1Collab",
		CoreParticipants: []string{"tz1alice", "tz1bob"},
	}

	assert.True(t, collab.HasCoreParticipant("tz1alice"))
	assert.False(t, collab.HasCoreParticipant("tz1carol"))
}
