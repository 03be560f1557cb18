package service

import "context"

// Notifier delivers a short message to a member (the app uses LINE push
// messages). Delivery is best effort; a failed notification never fails the
// review that triggered it.
type Notifier interface {
	Notify(ctx context.Context, ownerID, message string) error
}

// NoopNotifier is used when no messaging channel is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, ownerID, message string) error {
	return nil
}

var _ Notifier = NoopNotifier{}
