package notify

import (
	"log"
	"time"

	subsvc "riskbot/pkg/subscription/service"
	"riskbot/pkg/workflow"
)

// Sender delivers one outbound message to a single user.
type Sender interface {
	Send(userID int64, text string, options []workflow.Option) error
}

// Reminder fans a daily prompt out to every subscriber, at most once per
// calendar date each.
type Reminder struct {
	subs   subsvc.SubscriptionService
	sender Sender
	now    func() time.Time
}

func NewReminder(subs subsvc.SubscriptionService, sender Sender) *Reminder {
	return &Reminder{subs: subs, sender: sender, now: time.Now}
}

func (r *Reminder) SendDaily() {
	subs, err := r.subs.Subscribers()
	if err != nil {
		log.Printf("[notify] list subscribers: %v", err)
		return
	}

	today := r.now().Format("2006-01-02")
	text := "📌 Ежедневное напоминание от " + r.now().Format("02.01.2006") +
		"\n\nНе забудьте сообщить о новых рисках проекта!"
	options := []workflow.Option{{Label: "📢 Сообщить риск", Token: "submit_risk"}}

	for _, s := range subs {
		if s.LastNotification == today {
			continue
		}
		if err := r.sender.Send(s.UserID, text, options); err != nil {
			log.Printf("[notify] send to %d: %v", s.UserID, err)
			continue
		}
		if err := r.subs.MarkNotified(s.UserID, today); err != nil {
			log.Printf("[notify] mark %d: %v", s.UserID, err)
		}
	}
}
