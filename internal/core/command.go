package core

import "context"

// Request carries everything a command needs about the triggering message.
// Args is the raw remainder after the verb, kept unsplit because locations
// contain spaces.
type Request struct {
	ChatID   int64
	SenderID int64
	Args     string
}

type CmdRouter interface {
	// Execute dispatches a bang-prefixed message. The bool reports whether
	// the input was treated as a command at all; plain chatter returns false
	// so transports can decide between greeting and staying silent.
	Execute(ctx context.Context, req Request, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Usage() string
	Description() string
	Execute(ctx context.Context, req Request) (string, error)
}

// Broadcaster sends a message to many chats. Implemented by the telegram
// transport, consumed by the announce command.
type Broadcaster interface {
	Broadcast(ctx context.Context, chatIDs []int64, message string) error
}
