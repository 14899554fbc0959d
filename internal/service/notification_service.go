package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/frontdesk/visitor-register/internal/config"
	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/events"
)

// NotificationService tells hosts about their visitors.
// Delivery is stubbed: email and webhook sends are logged.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventVisitorCheckedIn, n.handleVisitorCheckedIn)
	n.dispatcher.Subscribe(events.EventVisitorCheckedOut, n.handleVisitorCheckedOut)
}

func (n *NotificationService) handleVisitorCheckedIn(ctx context.Context, event events.Event) error {
	n.logger.Info("VisitorCheckedIn",
		zap.String("ticket_number", event.TicketNumber),
		zap.String("host", hostLabel(event)),
		zap.String("purpose", string(event.Payload.Purpose)))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVisitorCheckedOut(ctx context.Context, event events.Event) error {
	n.logger.Info("VisitorCheckedOut",
		zap.String("ticket_number", event.TicketNumber),
		zap.String("host", hostLabel(event)))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func hostLabel(event events.Event) string {
	if event.Payload.StaffName == "" {
		return domain.StaffLabel(nil)
	}
	return domain.StaffLabel(&domain.StaffMember{Name: event.Payload.StaffName, Department: event.Payload.Department})
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("staff_member_id", event.Payload.StaffMemberID),
		zap.String("visitor", event.Payload.FullName),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("ticket_number", event.TicketNumber),
		zap.String("event_type", string(event.Type)))
}
