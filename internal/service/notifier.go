package service

import (
	"log/slog"
	"sync"
)

// Notifier delivers a reply text to a requester. Delivery is best-effort;
// the core never depends on confirmation. The messaging front-end supplies
// the real implementation.
type Notifier interface {
	Notify(requesterID, text string)
}

// LogNotifier writes replies to the log; the default when no front-end is
// attached.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(requesterID, text string) {
	n.Logger.Info("reply", "requester", requesterID, "text", text)
}

// ReplyBus is an in-process notifier for embedding front-ends: replies are
// dispatched to a per-requester subscriber, or parked in a mailbox until
// one subscribes.
type ReplyBus struct {
	mu          sync.Mutex
	subscribers map[string]func(text string)
	mailbox     map[string][]string
}

func NewReplyBus() *ReplyBus {
	return &ReplyBus{
		subscribers: make(map[string]func(string)),
		mailbox:     make(map[string][]string),
	}
}

func (b *ReplyBus) Notify(requesterID, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if handler, ok := b.subscribers[requesterID]; ok {
		go handler(text)
		return
	}
	b.mailbox[requesterID] = append(b.mailbox[requesterID], text)
}

// Subscribe registers a handler and drains any parked replies to it.
func (b *ReplyBus) Subscribe(requesterID string, handler func(text string)) {
	b.mu.Lock()
	b.subscribers[requesterID] = handler
	pending := append([]string(nil), b.mailbox[requesterID]...)
	delete(b.mailbox, requesterID)
	b.mu.Unlock()

	for _, text := range pending {
		handler(text)
	}
}

func (b *ReplyBus) Unsubscribe(requesterID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, requesterID)
}
