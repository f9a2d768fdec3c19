package votes

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/adapter"
	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
)

const maxPollOptions = 3

// Poll is a poll description with its options keyed by option id
type Poll struct {
	ID       string
	Question string
	Multi    bool
	Options  map[string]string
}

// ParsePoll parses the poll metadata document. Single choice polls are YES / NO polls.
func ParsePoll(id string, data []byte) (Poll, error) {
	if !gjson.ValidBytes(data) {
		return Poll{}, fmt.Errorf("%w: poll %s metadata is not valid json", domain.ErrInvalidRecord, id)
	}

	doc := gjson.ParseBytes(data)
	poll := Poll{
		ID:       id,
		Question: doc.Get("question").String(),
		Multi:    doc.Get("multi").String() != "false",
		Options:  make(map[string]string),
	}

	if !poll.Multi {
		poll.Options["1"] = "YES"
		poll.Options["2"] = "NO"
		return poll, nil
	}

	for i := 1; i <= maxPollOptions; i++ {
		key := strconv.Itoa(i)
		if name := doc.Get("opt" + key).String(); name != "" {
			poll.Options[key] = name
		}
	}
	if len(poll.Options) == 0 {
		return Poll{}, fmt.Errorf("%w: poll %s has no options", domain.ErrInvalidRecord, id)
	}

	return poll, nil
}

// FetchPoll downloads the poll metadata from an IPFS gateway
func FetchPoll(ctx context.Context, client adapter.HTTPClient, gateway string, id string) (Poll, error) {
	url := strings.TrimSuffix(gateway, "/") + "/" + id
	data, err := client.GetRaw(ctx, url)
	if err != nil {
		return Poll{}, fmt.Errorf("failed to fetch poll %s: %w", id, err)
	}
	return ParsePoll(id, data)
}

// OptionResult is the number of valid votes of one option
type OptionResult struct {
	Option     string
	Name       string
	Votes      int
	Percentage float64
}

// Result is the tally of a poll
type Result struct {
	Poll    string
	Valid   int
	Options []OptionResult
	// Rejected are the voters outside the allowed list, sorted
	Rejected []string
	// Invalid are the allowed voters that picked an unknown option, sorted
	Invalid []string

	choices map[string]string
}

// VoteOf returns the option name picked by a voter
func (r Result) VoteOf(address string) (string, bool) {
	option, ok := r.choices[address]
	if !ok {
		return "", false
	}
	for _, o := range r.Options {
		if o.Option == option {
			return o.Name, true
		}
	}
	return "", false
}

// Tally counts the votes of the poll cast by allowed voters. An empty allowed list accepts every voter.
func Tally(poll Poll, votes []domain.Vote, allowedVoters []string) Result {
	allowed := make(map[string]bool, len(allowedVoters))
	for _, address := range allowedVoters {
		allowed[address] = true
	}

	counts := make(map[string]int, len(poll.Options))
	result := Result{
		Poll:     poll.ID,
		Rejected: make([]string, 0),
		Invalid:  make([]string, 0),
		choices:  make(map[string]string),
	}

	for _, vote := range votes {
		if vote.Poll != poll.ID {
			continue
		}
		if len(allowed) > 0 && !allowed[vote.Address] {
			result.Rejected = append(result.Rejected, vote.Address)
			continue
		}
		if _, ok := poll.Options[vote.Option]; !ok {
			result.Invalid = append(result.Invalid, vote.Address)
			continue
		}
		counts[vote.Option]++
		result.choices[vote.Address] = vote.Option
		result.Valid++
	}

	options := make([]string, 0, len(poll.Options))
	for option := range poll.Options {
		options = append(options, option)
	}
	sort.Strings(options)

	for _, option := range options {
		r := OptionResult{Option: option, Name: poll.Options[option], Votes: counts[option]}
		if result.Valid > 0 {
			r.Percentage = float64(r.Votes) * 100 / float64(result.Valid)
		}
		result.Options = append(result.Options, r)
	}
	sort.Strings(result.Rejected)
	sort.Strings(result.Invalid)

	logger.Info("Tallied poll",
		zap.String("poll", poll.ID),
		zap.Int("valid", result.Valid),
		zap.Int("rejected", len(result.Rejected)),
		zap.Int("invalid", len(result.Invalid)))

	return result
}
