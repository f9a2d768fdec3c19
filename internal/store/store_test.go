package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/teia-community/teia-analytics/internal/domain"
	"github.com/teia-community/teia-analytics/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestUser creates a test user row
func buildTestUser(id int, address string, userType domain.UserType) schema.User {
	first := time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)
	return schema.User{
		Address:         address,
		ProfileID:       id,
		Username:        "user" + address[len(address)-2:],
		Type:            string(userType),
		HasProfile:      true,
		FirstActivity:   &first,
		LastActivity:    &first,
		ActiveDays:      1,
		MintedCount:     id,
		MoneySpent:      float64(id) * 10,
		ConnectionCount: id,
	}
}

// buildTestAllocation creates a test allocation row
func buildTestAllocation(address string, total float64) schema.Allocation {
	return schema.Allocation{
		Address:        address,
		Type:           string(domain.UserTypeArtist),
		ScalingFactor:  1,
		Amounts:        datatypes.NewJSONType(map[string]float64{"minting": total}),
		ActivityAmount: total,
		TotalAmount:    total,
	}
}

func createTestRun(t *testing.T, store Store, program schema.RunProgram) *schema.AnalysisRun {
	run, err := store.CreateRun(context.Background(), CreateRunInput{
		Program: program,
		Poll:    "QmPoll",
		Config:  datatypes.JSON(`{"batch_size":10000}`),
		Summary: datatypes.JSON(`{"users":3}`),
	})
	require.NoError(t, err)
	require.NotNil(t, run)
	return run
}

// RunStoreTests runs the store test suite against a store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	t.Run("CreateRun", func(t *testing.T) {
		store := initDB(t)
		defer cleanupDB(t)
		testCreateRun(t, store)
	})

	t.Run("GetLatestRun", func(t *testing.T) {
		store := initDB(t)
		defer cleanupDB(t)
		testGetLatestRun(t, store)
	})

	t.Run("SaveUsers", func(t *testing.T) {
		store := initDB(t)
		defer cleanupDB(t)
		testSaveUsers(t, store)
	})

	t.Run("ListUsersByType", func(t *testing.T) {
		store := initDB(t)
		defer cleanupDB(t)
		testListUsersByType(t, store)
	})

	t.Run("SaveAllocations", func(t *testing.T) {
		store := initDB(t)
		defer cleanupDB(t)
		testSaveAllocations(t, store)
	})
}

func testCreateRun(t *testing.T, store Store) {
	run := createTestRun(t, store, schema.RunProgramUsers)

	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, schema.RunProgramUsers, run.Program)
	assert.Equal(t, "QmPoll", run.Poll)
	assert.Equal(t, 0, run.UserCount)
}

func testGetLatestRun(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("no run", func(t *testing.T) {
		_, err := store.GetLatestRun(ctx, schema.RunProgramDistribution)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("latest run per program", func(t *testing.T) {
		usersRun := createTestRun(t, store, schema.RunProgramUsers)
		distributionRun := createTestRun(t, store, schema.RunProgramDistribution)

		run, err := store.GetLatestRun(ctx, schema.RunProgramUsers)
		require.NoError(t, err)
		assert.Equal(t, usersRun.ID, run.ID)

		run, err = store.GetLatestRun(ctx, schema.RunProgramDistribution)
		require.NoError(t, err)
		assert.Equal(t, distributionRun.ID, run.ID)
		assert.JSONEq(t, `{"users":3}`, string(run.Summary))
	})
}

func testSaveUsers(t *testing.T, store Store) {
	ctx := context.Background()
	run := createTestRun(t, store, schema.RunProgramUsers)

	t.Run("unknown run", func(t *testing.T) {
		err := store.SaveUsers(ctx, uuid.New(), []schema.User{buildTestUser(0, "tz1aa", domain.UserTypeArtist)})
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("insert and upsert", func(t *testing.T) {
		rows := []schema.User{
			buildTestUser(0, "tz1aa", domain.UserTypeArtist),
			buildTestUser(1, "tz1bb", domain.UserTypePatron),
		}
		require.NoError(t, store.SaveUsers(ctx, run.ID, rows))

		updated := buildTestUser(1, "tz1bb", domain.UserTypeArtist)
		updated.MintedCount = 7
		require.NoError(t, store.SaveUsers(ctx, run.ID, []schema.User{updated}))

		user, err := store.GetUser(ctx, run.ID, "tz1bb")
		require.NoError(t, err)
		assert.Equal(t, string(domain.UserTypeArtist), user.Type)
		assert.Equal(t, 7, user.MintedCount)
		require.NotNil(t, user.FirstActivity)
		assert.True(t, user.FirstActivity.Equal(time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)))

		latest, err := store.GetLatestRun(ctx, schema.RunProgramUsers)
		require.NoError(t, err)
		assert.Equal(t, 2, latest.UserCount)
	})

	t.Run("user not found", func(t *testing.T) {
		_, err := store.GetUser(ctx, run.ID, "tz1missing")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func testListUsersByType(t *testing.T, store Store) {
	ctx := context.Background()
	run := createTestRun(t, store, schema.RunProgramUsers)

	rows := []schema.User{
		buildTestUser(0, "tz1aa", domain.UserTypeArtist),
		buildTestUser(1, "tz1bb", domain.UserTypePatron),
		buildTestUser(2, "tz1cc", domain.UserTypeArtist),
		buildTestUser(3, "tz1dd", domain.UserTypeArtist),
	}
	rows[2].Restricted = true
	require.NoError(t, store.SaveUsers(ctx, run.ID, rows))

	restricted, allowed := true, false

	tests := []struct {
		name      string
		filter    UserFilter
		addresses []string
		total     uint64
	}{
		{
			name:      "every type",
			filter:    UserFilter{Limit: 10},
			addresses: []string{"tz1aa", "tz1bb", "tz1cc", "tz1dd"},
			total:     4,
		},
		{
			name:      "artists only",
			filter:    UserFilter{Type: string(domain.UserTypeArtist), Limit: 10},
			addresses: []string{"tz1aa", "tz1cc", "tz1dd"},
			total:     3,
		},
		{
			name:      "paginated artists",
			filter:    UserFilter{Type: string(domain.UserTypeArtist), Limit: 1, Offset: 1},
			addresses: []string{"tz1cc"},
			total:     3,
		},
		{
			name:      "restricted only",
			filter:    UserFilter{Restricted: &restricted, Limit: 10},
			addresses: []string{"tz1cc"},
			total:     1,
		},
		{
			name:      "allowed artists",
			filter:    UserFilter{Type: string(domain.UserTypeArtist), Restricted: &allowed, Limit: 10},
			addresses: []string{"tz1aa", "tz1dd"},
			total:     2,
		},
		{
			name:      "no swappers",
			filter:    UserFilter{Type: string(domain.UserTypeSwapper), Limit: 10},
			addresses: nil,
			total:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, total, err := store.ListUsersByType(ctx, run.ID, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)

			var addresses []string
			for _, u := range users {
				addresses = append(addresses, u.Address)
			}
			assert.Equal(t, tt.addresses, addresses)
		})
	}
}

func testSaveAllocations(t *testing.T, store Store) {
	ctx := context.Background()
	run := createTestRun(t, store, schema.RunProgramDistribution)

	allocations := []schema.Allocation{
		buildTestAllocation("tz1aa", 10),
		buildTestAllocation("tz1bb", 30),
		buildTestAllocation("tz1cc", 20),
	}
	require.NoError(t, store.SaveAllocations(ctx, run.ID, allocations))

	rows, total, err := store.ListAllocations(ctx, run.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "tz1bb", rows[0].Address)
	assert.Equal(t, "tz1cc", rows[1].Address)
	assert.Equal(t, 20.0, rows[1].Amounts.Data()["minting"])

	err = store.SaveAllocations(ctx, uuid.New(), allocations)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}
