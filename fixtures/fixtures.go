// Package fixtures holds the static catalogues consumed by deterministic
// generation: a named user list and a conversation list with relative message
// timing. The defaults are embedded; callers may load external files instead.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"chat-dblab/domain"
)

//go:embed data/users.json data/conversations.json
var defaultData embed.FS

type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password,omitempty"`
}

type Message struct {
	Sender        string `json:"sender"`
	Content       string `json:"content"`
	OffsetMinutes int    `json:"timestamp_offset_minutes"`
}

type Conversation struct {
	Type         string    `json:"type"` // "dm" or "group"
	Topic        string    `json:"topic,omitempty"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
}

// Set is a complete fixture catalogue. A valid Set fully determines the
// deterministic dataset: same Set, same output.
type Set struct {
	Users         []User
	Conversations []Conversation
}

// Default returns the embedded catalogue: 5 users, 2 direct chats,
// 2 group chats, 16 messages, 10 memberships.
func Default() (Set, error) {
	users, err := defaultData.ReadFile("data/users.json")
	if err != nil {
		return Set{}, err
	}
	conversations, err := defaultData.ReadFile("data/conversations.json")
	if err != nil {
		return Set{}, err
	}
	return parse(users, conversations)
}

// Load reads a catalogue from external JSON files.
func Load(usersPath, conversationsPath string) (Set, error) {
	users, err := os.ReadFile(usersPath)
	if err != nil {
		return Set{}, fmt.Errorf("read users fixture: %w", err)
	}
	conversations, err := os.ReadFile(conversationsPath)
	if err != nil {
		return Set{}, fmt.Errorf("read conversations fixture: %w", err)
	}
	return parse(users, conversations)
}

func parse(users, conversations []byte) (Set, error) {
	var s Set
	if err := json.Unmarshal(users, &s.Users); err != nil {
		return Set{}, fmt.Errorf("parse users fixture: %w", err)
	}
	if err := json.Unmarshal(conversations, &s.Conversations); err != nil {
		return Set{}, fmt.Errorf("parse conversations fixture: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// Validate fails fast on catalogues that could never satisfy the schema
// invariants: unknown participants, duplicate handles, direct conversations
// without exactly two participants, groups below two.
func (s Set) Validate() error {
	known := make(map[string]struct{}, len(s.Users))
	for _, u := range s.Users {
		handle := domain.NormalizeHandle(u.Username)
		if handle == "" {
			return fmt.Errorf("fixture user with empty username")
		}
		if _, dup := known[handle]; dup {
			return fmt.Errorf("duplicate fixture username %q", handle)
		}
		known[handle] = struct{}{}
	}

	seenPairs := make(map[string]struct{})
	for i, c := range s.Conversations {
		members := make(map[string]struct{}, len(c.Participants))
		for _, p := range c.Participants {
			handle := domain.NormalizeHandle(p)
			if _, ok := known[handle]; !ok {
				return fmt.Errorf("conversation %d references unknown user %q", i, p)
			}
			if _, dup := members[handle]; dup {
				return fmt.Errorf("conversation %d lists user %q twice", i, p)
			}
			members[handle] = struct{}{}
		}

		switch c.Type {
		case "dm":
			if len(c.Participants) != 2 {
				return fmt.Errorf("conversation %d: direct chats need exactly 2 participants, got %d", i, len(c.Participants))
			}
			key := pairKey(c.Participants[0], c.Participants[1])
			if _, dup := seenPairs[key]; dup {
				return fmt.Errorf("conversation %d: duplicate direct chat for pair %s", i, key)
			}
			seenPairs[key] = struct{}{}
		case "group":
			if len(c.Participants) < 2 {
				return fmt.Errorf("conversation %d: group chats need at least 2 participants, got %d", i, len(c.Participants))
			}
			if c.Topic == "" {
				return fmt.Errorf("conversation %d: group chat without topic", i)
			}
		default:
			return fmt.Errorf("conversation %d: unknown type %q", i, c.Type)
		}

		for j, m := range c.Messages {
			if _, ok := members[domain.NormalizeHandle(m.Sender)]; !ok {
				return fmt.Errorf("conversation %d message %d: sender %q is not a participant", i, j, m.Sender)
			}
			if m.Content == "" {
				return fmt.Errorf("conversation %d message %d: empty content", i, j)
			}
			if m.OffsetMinutes < 0 {
				return fmt.Errorf("conversation %d message %d: negative timestamp offset", i, j)
			}
		}
	}
	return nil
}

// Counts returns the entity counts a population of this Set will produce,
// which doubles as the verifier's exact expectation in deterministic mode.
func (s Set) Counts() (users, chats, memberships, messages int) {
	users = len(s.Users)
	chats = len(s.Conversations)
	for _, c := range s.Conversations {
		memberships += len(c.Participants)
		messages += len(c.Messages)
	}
	return users, chats, memberships, messages
}

func pairKey(a, b string) string {
	a, b = domain.NormalizeHandle(a), domain.NormalizeHandle(b)
	if a > b {
		a, b = b, a
	}
	return a + "/" + b
}
