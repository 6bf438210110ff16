package serviceImp

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"riskbot/entities"
	repoImp "riskbot/pkg/subscription/repositoryImp"
	"riskbot/pkg/subscription/service"
)

func openTestSvc(t *testing.T) service.SubscriptionService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Subscription{}))
	return New(repoImp.New(db))
}

func TestEnsureDefaultsToSubscribed(t *testing.T) {
	s := openTestSvc(t)

	require.NoError(t, s.Ensure(1))
	assert.True(t, s.IsSubscribed(1))

	// second contact must not flip anything the user changed
	_, err := s.Toggle(1)
	require.NoError(t, err)
	require.NoError(t, s.Ensure(1))
	assert.False(t, s.IsSubscribed(1))
}

func TestToggleRoundTrip(t *testing.T) {
	s := openTestSvc(t)
	require.NoError(t, s.Ensure(7))

	on, err := s.Toggle(7)
	require.NoError(t, err)
	assert.False(t, on)

	on, err = s.Toggle(7)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestToggleWithoutPriorContact(t *testing.T) {
	s := openTestSvc(t)

	// unseen user: toggle creates the row
	on, err := s.Toggle(99)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, s.IsSubscribed(99))
}

func TestSubscribersAndMarkNotified(t *testing.T) {
	s := openTestSvc(t)
	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, s.Ensure(id))
	}
	_, err := s.Toggle(2) // unsubscribes
	require.NoError(t, err)

	subs, err := s.Subscribers()
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.EqualValues(t, 1, subs[0].UserID)
	assert.EqualValues(t, 3, subs[1].UserID)

	require.NoError(t, s.MarkNotified(1, "2025-03-10"))
	subs, err = s.Subscribers()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", subs[0].LastNotification)
}
