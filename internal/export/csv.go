package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/teia-community/teia-analytics/internal/distribution"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/graph"
)

// VotedColumnPrefix prefixes the vote membership column, followed by the poll id
const VotedColumnPrefix = "voted_"

type column struct {
	name     string
	required bool
	get      func(User) string
	set      func(*User, string) error
}

func stringColumn(name string, field func(*User) *string) column {
	return column{
		name: name,
		get:  func(u User) string { return *field(&u) },
		set:  func(u *User, v string) error { *field(u) = v; return nil },
	}
}

func boolColumn(name string, required bool, field func(*User) *bool) column {
	return column{
		name:     name,
		required: required,
		get:      func(u User) string { return strconv.FormatBool(*field(&u)) },
		set: func(u *User, v string) error {
			b, err := strconv.ParseBool(v)
			*field(u) = b
			return err
		},
	}
}

func intColumn(name string, required bool, field func(*User) *int) column {
	return column{
		name:     name,
		required: required,
		get:      func(u User) string { return strconv.Itoa(*field(&u)) },
		set: func(u *User, v string) error {
			i, err := strconv.Atoi(v)
			*field(u) = i
			return err
		},
	}
}

func floatColumn(name string, required bool, field func(*User) *float64) column {
	return column{
		name:     name,
		required: required,
		get:      func(u User) string { return formatFloat(*field(&u)) },
		set: func(u *User, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			*field(u) = f
			return err
		},
	}
}

var userColumns = []column{
	{
		name:     "address",
		required: true,
		get:      func(u User) string { return u.Address },
		set:      func(u *User, v string) error { u.Address = v; return nil },
	},
	intColumn("id", false, func(u *User) *int { return &u.ID }),
	stringColumn("username", func(u *User) *string { return &u.Username }),
	{
		name: "type",
		get:  func(u User) string { return string(u.Type) },
		set: func(u *User, v string) error {
			u.Type = domain.UserType(v)
			if !domain.IsValidUserType(u.Type) {
				return fmt.Errorf("unknown user type %q", v)
			}
			return nil
		},
	},
	boolColumn("restricted", true, func(u *User) *bool { return &u.Restricted }),
	boolColumn("wash_trader", true, func(u *User) *bool { return &u.WashTrader }),
	boolColumn("verified", true, func(u *User) *bool { return &u.Verified }),
	boolColumn("has_profile", true, func(u *User) *bool { return &u.HasProfile }),
	stringColumn("twitter", func(u *User) *string { return &u.Twitter }),
	stringColumn("discord", func(u *User) *string { return &u.Discord }),
	stringColumn("github", func(u *User) *string { return &u.Github }),
	stringColumn("tzkt_username", func(u *User) *string { return &u.TzktUsername }),
	stringColumn("tzprofiles_username", func(u *User) *string { return &u.TzprofilesUsername }),
	stringColumn("domain_username", func(u *User) *string { return &u.DomainUsername }),
	stringColumn("hen_username", func(u *User) *string { return &u.HenUsername }),
	stringColumn("hen_metadata", func(u *User) *string { return &u.HenMetadata }),
	floatColumn("token_balance", true, func(u *User) *float64 { return &u.TokenBalance }),
	{
		name: "token_balance_level",
		get:  func(u User) string { return strconv.FormatUint(u.TokenBalanceLevel, 10) },
		set: func(u *User, v string) error {
			level, err := strconv.ParseUint(v, 10, 64)
			u.TokenBalanceLevel = level
			return err
		},
	},
	intColumn("contribution_level", true, func(u *User) *int { return &u.ContributionLevel }),
	stringColumn("first_activity", func(u *User) *string { return &u.FirstActivity }),
	stringColumn("last_activity", func(u *User) *string { return &u.LastActivity }),
	stringColumn("first_mint", func(u *User) *string { return &u.FirstMint }),
	stringColumn("last_mint", func(u *User) *string { return &u.LastMint }),
	stringColumn("first_collect", func(u *User) *string { return &u.FirstCollect }),
	stringColumn("last_collect", func(u *User) *string { return &u.LastCollect }),
	stringColumn("first_swap", func(u *User) *string { return &u.FirstSwap }),
	stringColumn("last_swap", func(u *User) *string { return &u.LastSwap }),
	intColumn("active_days", true, func(u *User) *int { return &u.ActiveDays }),
	intColumn("platform_active_days", true, func(u *User) *int { return &u.PlatformActiveDays }),
	intColumn("minted_count", true, func(u *User) *int { return &u.MintedCount }),
	intColumn("collected_count", true, func(u *User) *int { return &u.CollectedCount }),
	intColumn("swapped_count", false, func(u *User) *int { return &u.SwappedCount }),
	floatColumn("money_earned_own", true, func(u *User) *float64 { return &u.MoneyEarnedOwn }),
	floatColumn("money_earned_other", false, func(u *User) *float64 { return &u.MoneyEarnedOther }),
	floatColumn("money_earned_collaborations", false, func(u *User) *float64 { return &u.MoneyEarnedCollaborations }),
	floatColumn("money_earned", false, func(u *User) *float64 { return &u.MoneyEarned }),
	floatColumn("money_spent", true, func(u *User) *float64 { return &u.MoneySpent }),
	intColumn("collaborations", false, func(u *User) *int { return &u.Collaborations }),
	intColumn("connections_to_artists", false, func(u *User) *int { return &u.ConnectionsToArtists }),
	intColumn("connections_to_collectors", false, func(u *User) *int { return &u.ConnectionsToCollectors }),
	intColumn("connection_count", true, func(u *User) *int { return &u.ConnectionCount }),
	intColumn("vote_count", true, func(u *User) *int { return &u.VoteCount }),
}

// WriteUsers writes the users table, with a vote membership column for the poll when set
func WriteUsers(w io.Writer, rows []User, poll string) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(userColumns)+1)
	for _, c := range userColumns {
		header = append(header, c.name)
	}
	if poll != "" {
		header = append(header, VotedColumnPrefix+poll)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write users header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))
		for _, c := range userColumns {
			record = append(record, c.get(row))
		}
		if poll != "" {
			record = append(record, strconv.FormatBool(row.VotedInPoll))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write user %s: %w", row.Address, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadUsers reads a users table. Unknown columns are ignored and the allocation inputs are required.
func ReadUsers(r io.Reader) ([]User, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read users header: %w", err)
	}

	index := make(map[string]int, len(header))
	voted := -1
	for i, name := range header {
		index[name] = i
		if strings.HasPrefix(name, VotedColumnPrefix) {
			voted = i
		}
	}

	missing := make([]string, 0)
	for _, c := range userColumns {
		if _, ok := index[c.name]; !ok && c.required {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("users table is missing columns: %s", strings.Join(missing, ", "))
	}

	rows := make([]User, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read users line %d: %w", line, err)
		}

		var row User
		for _, c := range userColumns {
			i, ok := index[c.name]
			if !ok || record[i] == "" && !c.required {
				continue
			}
			if err := c.set(&row, record[i]); err != nil {
				return nil, fmt.Errorf("failed to parse %s on line %d: %w", c.name, line, err)
			}
		}
		if voted >= 0 && record[voted] != "" {
			if row.VotedInPoll, err = strconv.ParseBool(record[voted]); err != nil {
				return nil, fmt.Errorf("failed to parse %s on line %d: %w", header[voted], line, err)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// AllocationRows converts users table rows to allocation inputs
func AllocationRows(rows []User) []distribution.Row {
	out := make([]distribution.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.AllocationRow())
	}
	return out
}

// WriteAllocations writes one row per allocation with the per component amounts
func WriteAllocations(w io.Writer, result *distribution.Result) error {
	writer := csv.NewWriter(w)

	header := []string{
		"address", "username", "type", "contributor", "contribution_level", "verified", "has_profile",
		"wash_trader", "token_balance", "active_days", "platform_active_days", "vote_count", "minted_count",
		"collected_count", "connection_count", "money_earned_own", "money_spent", "scaling_factor",
	}
	for _, name := range result.Components {
		header = append(header, name+"_amount")
	}
	header = append(header, "activity_amount", "total_amount")

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write allocations header: %w", err)
	}

	for _, a := range result.Allocations {
		record := []string{
			a.Address,
			a.Username,
			string(a.Type),
			strconv.FormatBool(a.ContributionLevel > 0),
			strconv.Itoa(a.ContributionLevel),
			strconv.FormatBool(a.Verified),
			strconv.FormatBool(a.HasProfile),
			strconv.FormatBool(a.WashTrader),
			formatFloat(a.TokenBalance),
			strconv.Itoa(a.ActiveDays),
			strconv.Itoa(a.PlatformActiveDays),
			strconv.Itoa(a.VoteCount),
			strconv.Itoa(a.MintedCount),
			strconv.Itoa(a.CollectedCount),
			strconv.Itoa(a.ConnectionCount),
			formatFloat(a.MoneyEarnedOwn),
			formatFloat(a.MoneySpent),
			formatFloat(a.ScalingFactor),
		}
		for _, name := range result.Components {
			record = append(record, formatFloat(a.Amounts[name]))
		}
		record = append(record, formatFloat(a.ActivityAmount), formatFloat(a.Total))

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write allocation %s: %w", a.Address, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteConnections writes the partitioned neighbors of every graph node, lists separated by semicolons
func WriteConnections(w io.Writer, g *graph.Graph) error {
	writer := csv.NewWriter(w)

	header := []string{
		"id", "address",
		"both_ids", "both_weights",
		"artists_ids", "artists_weights",
		"collectors_ids", "collectors_weights",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write connections header: %w", err)
	}

	for _, node := range g.Nodes() {
		record := []string{
			strconv.Itoa(node.ID),
			node.Address,
			joinInts(node.Both.IDs), joinInts(node.Both.Weights),
			joinInts(node.ArtistsOnly.IDs), joinInts(node.ArtistsOnly.Weights),
			joinInts(node.CollectorsOnly.IDs), joinInts(node.CollectorsOnly.Weights),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write connections of %s: %w", node.Address, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ";")
}
