package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskbot/entities"
	"riskbot/pkg/workflow"
)

type fakeSubs struct {
	subs   map[int64]*entities.Subscription
	marked map[int64]string
}

func newFakeSubs(ids ...int64) *fakeSubs {
	f := &fakeSubs{subs: map[int64]*entities.Subscription{}, marked: map[int64]string{}}
	for _, id := range ids {
		f.subs[id] = &entities.Subscription{UserID: id, IsSubscribed: true}
	}
	return f
}

func (f *fakeSubs) Ensure(int64) error         { return nil }
func (f *fakeSubs) IsSubscribed(int64) bool    { return true }
func (f *fakeSubs) Toggle(int64) (bool, error) { return true, nil }

func (f *fakeSubs) Subscribers() ([]entities.Subscription, error) {
	var out []entities.Subscription
	for _, s := range f.subs {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSubs) MarkNotified(userID int64, date string) error {
	f.subs[userID].LastNotification = date
	f.marked[userID] = date
	return nil
}

type fakeSender struct {
	sent    map[int64]int
	failFor map[int64]bool
}

func (f *fakeSender) Send(userID int64, text string, options []workflow.Option) error {
	if f.failFor[userID] {
		return errors.New("unreachable")
	}
	if f.sent == nil {
		f.sent = map[int64]int{}
	}
	f.sent[userID]++
	return nil
}

func TestSendDailyOncePerDate(t *testing.T) {
	subs := newFakeSubs(1, 2)
	sender := &fakeSender{}
	r := NewReminder(subs, sender)
	r.now = func() time.Time { return time.Date(2025, 3, 10, 11, 30, 0, 0, time.UTC) }

	r.SendDaily()
	r.SendDaily()

	assert.Equal(t, 1, sender.sent[1])
	assert.Equal(t, 1, sender.sent[2])
	assert.Equal(t, "2025-03-10", subs.marked[1])

	// next day resends
	r.now = func() time.Time { return time.Date(2025, 3, 11, 11, 30, 0, 0, time.UTC) }
	r.SendDaily()
	assert.Equal(t, 2, sender.sent[1])
}

func TestSendDailyIsolatesFailures(t *testing.T) {
	subs := newFakeSubs(1, 2, 3)
	sender := &fakeSender{failFor: map[int64]bool{2: true}}
	r := NewReminder(subs, sender)
	r.now = func() time.Time { return time.Date(2025, 3, 10, 11, 30, 0, 0, time.UTC) }

	r.SendDaily()

	require.Equal(t, 1, sender.sent[1])
	require.Equal(t, 1, sender.sent[3])
	assert.Zero(t, sender.sent[2])
	// failed delivery is not marked, so it retries next firing
	assert.Empty(t, subs.marked[2])

	sender.failFor[2] = false
	r.SendDaily()
	assert.Equal(t, 1, sender.sent[2])
	assert.Equal(t, 1, sender.sent[1], "already-notified users are skipped")
}
