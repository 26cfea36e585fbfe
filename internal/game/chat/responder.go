// Package chat implements the scripted responder behind the MirageNet
// encrypted chatroom. It is a pure keyword lookup with a seedable
// random fallback; there is no context across messages.
package chat

import (
	"math/rand"
	"strings"
	"time"
)

// Personas that post in the chatroom.
const (
	PersonaSystem = "SYSTEM"
	PersonaAnon   = "rogue-node @anon"
	PersonaFBI    = "0xFBI"
)

// WelcomeBody is the chatroom's opening system message.
const WelcomeBody = "Welcome to MirageNet Encrypted Chatroom"

// Reply is a scripted response plus the delay before it should appear,
// simulating a live responder.
type Reply struct {
	Sender string
	Body   string
	Delay  time.Duration
}

type keywordGroup struct {
	keywords []string
	sender   string
	body     string
}

// Ordered: the first matching group wins.
var groups = []keywordGroup{
	{[]string{"help", "hint"}, PersonaSystem, "I cannot provide direct assistance. Try exploring the system."},
	{[]string{"password", "root"}, PersonaAnon, "Careful what you ask for in this channel. They're watching."},
	{[]string{"fbi", "trace"}, PersonaFBI, "This channel is being monitored."},
	{[]string{"vpn", "secure"}, PersonaAnon, "Always use protection when connecting. You never know who's watching."},
	{[]string{"mirage", "identity"}, PersonaAnon, "Identities are fluid in the digital realm. Who are you really?"},
	{[]string{"hello", "hi", "hey"}, PersonaAnon, "I shouldn't be talking to you. But I'm curious about your progress."},
}

var fallbackBodies = []string{
	"Interesting. Keep digging.",
	"I can't help you with that directly.",
	"Some secrets are better left undiscovered.",
	"The truth is hidden in plain sight.",
	"Be careful what you wish for.",
	"They're watching. Always watching.",
}

// Progress-driven chatroom lines, posted by the story rather than in
// answer to a player message.
var (
	WarningLine      = Reply{Sender: PersonaAnon, Body: "You're getting too close. They'll notice soon."}
	DiscoveryLine    = Reply{Sender: PersonaAnon, Body: "You found it. Now you understand why they want you."}
	BetrayalLine     = Reply{Sender: PersonaFBI, Body: "Target identified. Proceed with caution."}
	FinalWarningLine = Reply{Sender: PersonaAnon, Body: "This is your last chance to turn back."}
)

// fbiFallbackChance is the probability the authority persona answers an
// unmatched message.
const fbiFallbackChance = 0.3

// Responder produces scripted chat replies.
type Responder struct {
	rng *rand.Rand
}

// NewResponder returns a responder seeded for reproducible choices.
func NewResponder(seed int64) *Responder {
	return &Responder{rng: rand.New(rand.NewSource(seed))}
}

// Respond picks the scripted reply for a player message. Matching is
// case-insensitive substring search over the ordered keyword groups;
// unmatched messages get a weighted-random persona and line.
func (r *Responder) Respond(message string) Reply {
	lower := strings.ToLower(message)

	for _, group := range groups {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return Reply{Sender: group.sender, Body: group.body, Delay: r.delay()}
			}
		}
	}

	sender := PersonaAnon
	if r.rng.Float64() < fbiFallbackChance {
		sender = PersonaFBI
	}
	body := fallbackBodies[r.rng.Intn(len(fallbackBodies))]
	return Reply{Sender: sender, Body: body, Delay: r.delay()}
}

// delay samples uniformly between one and two seconds.
func (r *Responder) delay() time.Duration {
	return time.Second + time.Duration(r.rng.Float64()*float64(time.Second))
}
