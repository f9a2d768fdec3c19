package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/logger"
	"github.com/teia-community/teia-analytics/internal/users"
)

// Series is a per day count over a contiguous range of UTC days
type Series struct {
	Name   string
	Days   []string
	Values []int
}

// WithoutLastDay drops the last, usually incomplete, day of the series
func (s Series) WithoutLastDay() Series {
	if len(s.Days) == 0 {
		return s
	}
	return Series{
		Name:   s.Name,
		Days:   s.Days[:len(s.Days)-1],
		Values: s.Values[:len(s.Values)-1],
	}
}

// Total returns the sum of the series values
func (s Series) Total() int {
	total := 0
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Activity is a single dated action of an address
type Activity struct {
	Address   string
	Timestamp string
}

// ActivityFromTransactions returns the sender activity of the transactions
func ActivityFromTransactions(txs ...[]domain.Transaction) []Activity {
	activity := make([]Activity, 0)
	for _, list := range txs {
		for _, tx := range list {
			activity = append(activity, Activity{Address: tx.Sender.Address, Timestamp: tx.Timestamp})
		}
	}
	return activity
}

// DaysBetween returns the UTC days from the day of from to the day of to, both included
func DaysBetween(from, to time.Time) []string {
	start := truncateDay(from)
	end := truncateDay(to)

	days := make([]string, 0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day.Format(time.DateOnly))
	}
	return days
}

// CountsPerDay counts the timestamps falling on each day of the range. Timestamps outside the range are ignored.
func CountsPerDay(name string, timestamps []string, from, to time.Time) Series {
	series := newSeries(name, from, to)
	index := series.index()
	for _, timestamp := range timestamps {
		if i, ok := index[users.Day(timestamp)]; ok {
			series.Values[i]++
		}
	}
	return series
}

// NewUsersPerDay counts the profiles by the day of their first activity
func NewUsersPerDay(reg *users.Registry, from, to time.Time) Series {
	timestamps := make([]string, 0, reg.Len())
	for _, p := range reg.Profiles() {
		if p.FirstActivity != nil {
			timestamps = append(timestamps, p.FirstActivity.Timestamp)
		}
	}
	return CountsPerDay("new_users", timestamps, from, to)
}

// ActiveUsersPerDay counts the distinct addresses acting on each day
func ActiveUsersPerDay(activity []Activity, from, to time.Time) Series {
	series := newSeries("active_users", from, to)
	index := series.index()

	seen := make(map[string]map[string]bool)
	for _, a := range activity {
		day := users.Day(a.Timestamp)
		i, ok := index[day]
		if !ok {
			continue
		}
		if seen[day] == nil {
			seen[day] = make(map[string]bool)
		}
		if !seen[day][a.Address] {
			seen[day][a.Address] = true
			series.Values[i]++
		}
	}
	return series
}

// UsersLastActiveDay counts the addresses by the day of their last action
func UsersLastActiveDay(activity []Activity, from, to time.Time) Series {
	last := make(map[string]string)
	for _, a := range activity {
		if current, ok := last[a.Address]; !ok || a.Timestamp > current {
			last[a.Address] = a.Timestamp
		}
	}

	timestamps := make([]string, 0, len(last))
	for _, timestamp := range last {
		timestamps = append(timestamps, timestamp)
	}
	return CountsPerDay("users_last_active", timestamps, from, to)
}

// WriteSeries writes the series side by side, one row per day. All series must share the same days.
func WriteSeries(w io.Writer, series ...Series) error {
	if len(series) == 0 {
		return nil
	}

	days := series[0].Days
	header := []string{"day"}
	for _, s := range series {
		if len(s.Days) != len(days) || (len(days) > 0 && s.Days[0] != days[0]) {
			return fmt.Errorf("series %s does not cover the same days as %s", s.Name, series[0].Name)
		}
		header = append(header, s.Name)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write series header: %w", err)
	}
	for i, day := range days {
		record := []string{day}
		for _, s := range series {
			record = append(record, strconv.Itoa(s.Values[i]))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write series day %s: %w", day, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Summary is the population breakdown of a registry
type Summary struct {
	Users            int `json:"users"`
	Artists          int `json:"artists"`
	Patrons          int `json:"patrons"`
	Swappers         int `json:"swappers"`
	ArtistCollectors int `json:"artist_collectors"`
	Collaborations   int `json:"collaborations"`
	Holders          int `json:"holders"`
	Contributors     int `json:"contributors"`
	Restricted       int `json:"restricted"`
	WashTraders      int `json:"wash_traders"`
}

// Summarize counts the non restricted population by type. Restricted profiles are only counted as such.
func Summarize(reg *users.Registry) Summary {
	allowed := reg.Select(users.SelectNotRestricted)
	collectors := allowed.Select(users.SelectCollectors).Len()
	patrons := allowed.Select(users.SelectPatrons).Len()

	return Summary{
		Users:            allowed.Len(),
		Artists:          allowed.Select(users.SelectArtists).Len(),
		Patrons:          patrons,
		Swappers:         allowed.Select(users.SelectSwappers).Len(),
		ArtistCollectors: collectors - patrons,
		Collaborations:   allowed.Select(users.SelectCollaborations).Len(),
		Holders:          allowed.Select(users.SelectHolders).Len(),
		Contributors:     allowed.Select(users.SelectContributors).Len(),
		Restricted:       reg.Select(users.SelectRestricted).Len(),
		WashTraders:      allowed.Select(users.SelectWashTraders).Len(),
	}
}

// Log writes the summary as a single structured log line
func (s Summary) Log() {
	logger.Info("Summarized users",
		zap.Int("users", s.Users),
		zap.Int("artists", s.Artists),
		zap.Int("patrons", s.Patrons),
		zap.Int("swappers", s.Swappers),
		zap.Int("artistCollectors", s.ArtistCollectors),
		zap.Int("collaborations", s.Collaborations),
		zap.Int("holders", s.Holders),
		zap.Int("contributors", s.Contributors),
		zap.Int("restricted", s.Restricted),
		zap.Int("washTraders", s.WashTraders))
}

func newSeries(name string, from, to time.Time) Series {
	days := DaysBetween(from, to)
	return Series{Name: name, Days: days, Values: make([]int, len(days))}
}

func (s Series) index() map[string]int {
	index := make(map[string]int, len(s.Days))
	for i, day := range s.Days {
		index[day] = i
	}
	return index
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
