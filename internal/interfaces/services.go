package interfaces

import "context"

// ChatService is the conversational surface: one utterance in, one
// formatted reply out.
type ChatService interface {
	Reply(ctx context.Context, utterance string) (string, error)
}
