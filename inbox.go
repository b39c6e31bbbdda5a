package client

import "sync"

// Inbox maintains the ordered conversation list under two independent update
// sources: full refreshes from the server and piecemeal realtime message
// events. Invariants: at most one conversation per distinct other user, and
// most-recently-active first. Ordering is maintained by move-to-front on
// each update, never by a global re-sort.
type Inbox struct {
	mu            sync.Mutex
	conversations []Conversation
}

// NewInbox returns an empty inbox.
func NewInbox() *Inbox { return &Inbox{} }

// Replace swaps in a full server snapshot, e.g. on initial load. Realtime
// events only ever mutate the list incrementally afterward.
func (b *Inbox) Replace(list []Conversation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations = make([]Conversation, len(list))
	copy(b.conversations, list)
}

// Apply folds one inbound realtime message into the list. An existing
// conversation with the sender gets its last message replaced (unread, since
// it is freshly arrived) and moves to the front; otherwise a new conversation
// is synthesized from the event's sender identity and prepended.
func (b *Inbox) Apply(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	last := LastMessage{
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		Read:      false,
		Sender:    msg.Sender.ID,
	}

	for i := range b.conversations {
		if b.conversations[i].OtherUser.ID != msg.Sender.ID {
			continue
		}
		conv := b.conversations[i]
		conv.LastMessage = last
		copy(b.conversations[1:i+1], b.conversations[:i])
		b.conversations[0] = conv
		return
	}

	b.conversations = append(b.conversations, Conversation{})
	copy(b.conversations[1:], b.conversations)
	b.conversations[0] = Conversation{
		OtherUser: ConversationUser{
			ID:    msg.Sender.ID,
			Name:  msg.Sender.Name,
			Email: msg.Sender.Email,
		},
		LastMessage: last,
	}
}

// MarkRead flips the local read flag for the conversation with otherUserID,
// typically after Client.MarkConversationRead succeeds.
func (b *Inbox) MarkRead(otherUserID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.conversations {
		if b.conversations[i].OtherUser.ID == otherUserID {
			b.conversations[i].LastMessage.Read = true
			return
		}
	}
}

// Conversations returns a copy of the current list, most recent first.
func (b *Inbox) Conversations() []Conversation {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Conversation, len(b.conversations))
	copy(out, b.conversations)
	return out
}

// UnreadCount counts conversations whose last message was sent by the other
// party and has not been read.
func (b *Inbox) UnreadCount(selfID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.conversations {
		if c.LastMessage.Sender != selfID && !c.LastMessage.Read {
			n++
		}
	}
	return n
}

// Len returns the number of conversations.
func (b *Inbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conversations)
}
