package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/huffaz-portal/internal/events"
)

// notifier publishes domain events on a best-effort basis: failures are
// logged and never returned to the caller.
type notifier struct {
	pub events.Publisher
	log *logrus.Logger
}

func newNotifier(pub events.Publisher, log *logrus.Logger) notifier {
	if pub == nil {
		pub = events.Noop{}
	}
	return notifier{pub: pub, log: log}
}

func (n notifier) publish(ctx context.Context, typ, key string, data map[string]any) {
	if err := n.pub.Publish(ctx, events.New(typ, key, data)); err != nil && n.log != nil {
		n.log.WithError(err).WithFields(logrus.Fields{
			"event": typ,
			"key":   key,
		}).Warn("event publish failed")
	}
}
