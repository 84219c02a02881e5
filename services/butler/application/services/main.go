package services

import (
	"github.com/pyamsoft/fridge/pkg/app"
	"github.com/pyamsoft/fridge/services/butler/infrastructure/notifier"
	"github.com/pyamsoft/fridge/services/butler/infrastructure/pantry"
	"github.com/pyamsoft/fridge/services/butler/infrastructure/persistence/postgres"
	fridgesvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
)

// Services is the application-layer service container for the butler context.
type Services struct {
	Runner        *Runner
	Orders        *OrderService
	Notifications *NotificationService
	Settings      *SettingsService
}

// New wires the butler services. Pantry reads go through the fridge services.
// Reminders land in the Postgres inbox and, when SMTP is configured, in email too.
func New(a *app.Application, fridge *fridgesvcs.Services) *Services {
	inbox := postgres.NewInboxRepository(a.Db)

	var delivery Notifier = inbox
	if a.Config.EmailEnabled() {
		delivery = notifier.NewFanout(a.Logger, inbox, notifier.NewEmail(a.Config))
	}

	return &Services{
		Runner:        NewRunner(pantry.New(fridge), a.Preferences, delivery, a.Logger),
		Orders:        NewOrderService(a.EventBus),
		Notifications: NewNotificationService(inbox),
		Settings:      NewSettingsService(a.Preferences),
	}
}
