// Package publisher declares the message-publishing interface behind the
// stream sink, which pushes scalar events to downstream dashboards.
package publisher

import "context"

// Publisher delivers a JSON-serializable payload to a message stream and
// returns the broker-assigned message ID.
type Publisher interface {
	Publish(ctx context.Context, payload any) (string, error)
}
