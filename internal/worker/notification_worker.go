package worker

import (
	"context"

	"github.com/frontdesk/visitor-register/internal/events"
	"github.com/frontdesk/visitor-register/internal/observability"
	"github.com/frontdesk/visitor-register/internal/service"
)

// StartNotificationWorker registers host notification handlers and
// counts visitor events in metrics.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if metrics != nil {
		count := func(_ context.Context, event events.Event) error {
			metrics.RecordVisitorEvent(string(event.Type))
			return nil
		}
		dispatcher.Subscribe(events.EventVisitorCheckedIn, count)
		dispatcher.Subscribe(events.EventVisitorCheckedOut, count)
	}
}
