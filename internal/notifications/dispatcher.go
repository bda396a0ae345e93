package notifications

import (
	"context"
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// AdminDirectory lists the users that receive admin fan-out.
type AdminDirectory interface {
	AdminIDs(ctx context.Context) ([]string, error)
}

// Dispatcher appends notifications in reaction to domain events.
type Dispatcher struct {
	repo    *Repository
	admins  AdminDirectory
	metrics *metrics.NotificationMetrics
	logg    *logger.Logger
	now     func() time.Time
}

func NewDispatcher(repo *Repository, admins AdminDirectory, m *metrics.NotificationMetrics, logg *logger.Logger) (*Dispatcher, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if admins == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "admin directory required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Dispatcher{repo: repo, admins: admins, metrics: m, logg: logg, now: time.Now}, nil
}

// Notify appends one message to the recipient's inbox.
func (d *Dispatcher) Notify(ctx context.Context, userID string, msg Message) error {
	if userID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient required")
	}
	severity := msg.Severity
	if !severity.IsValid() {
		severity = enums.NotificationSeverityInfo
	}
	err := d.repo.Append(ctx, Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     msg.Title,
		Body:      msg.Body,
		Severity:  severity,
		CreatedAt: d.now().UTC(),
	})
	if err != nil {
		d.metrics.IncFailed()
		return err
	}
	d.metrics.IncDispatched(string(severity))
	return nil
}

// NotifyAdmins sends msg to every admin, one Notify per recipient. A failed
// delivery does not stop the others; all failures are returned together.
func (d *Dispatcher) NotifyAdmins(ctx context.Context, msg Message) error {
	ids, err := d.admins.AdminIDs(ctx)
	if err != nil {
		return err
	}
	var errs error
	for _, id := range ids {
		errs = multierr.Append(errs, d.Notify(ctx, id, msg))
	}
	return errs
}

// Deliver is Notify for callers whose primary write already succeeded: a
// failure is logged instead of returned.
func (d *Dispatcher) Deliver(ctx context.Context, userID string, msg Message) {
	if err := d.Notify(ctx, userID, msg); err != nil {
		d.logFailure(ctx, msg, err)
	}
}

// DeliverAdmins is the NotifyAdmins counterpart of Deliver.
func (d *Dispatcher) DeliverAdmins(ctx context.Context, msg Message) {
	if err := d.NotifyAdmins(ctx, msg); err != nil {
		d.logFailure(ctx, msg, err)
	}
}

func (d *Dispatcher) logFailure(ctx context.Context, msg Message, err error) {
	ctx = d.logg.WithFields(ctx, map[string]any{
		"notification_title": msg.Title,
		"failures":           len(multierr.Errors(err)),
	})
	d.logg.Error(ctx, "notifications.dispatch_failed", err)
}
