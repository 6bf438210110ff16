package notify

import (
	"log"
	"time"
)

// Scheduler fires the reminder once a day at the configured wall-clock
// time in the configured location.
type Scheduler struct {
	reminder *Reminder
	at       string
	loc      *time.Location
	stop     chan struct{}
}

func NewScheduler(reminder *Reminder, at string, loc *time.Location) *Scheduler {
	return &Scheduler{reminder: reminder, at: at, loc: loc, stop: make(chan struct{})}
}

// Run blocks until Stop is called. Call it from its own goroutine.
func (s *Scheduler) Run() {
	hhmm, err := time.Parse("15:04", s.at)
	if err != nil {
		log.Printf("[notify] bad reminder time %q: %v", s.at, err)
		return
	}
	log.Printf("[notify] daily reminder at %s (%s)", s.at, s.loc)

	for {
		now := time.Now().In(s.loc)
		next := time.Date(now.Year(), now.Month(), now.Day(),
			hhmm.Hour(), hhmm.Minute(), 0, 0, s.loc)
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-time.After(next.Sub(now)):
			s.reminder.SendDaily()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stop)
}
