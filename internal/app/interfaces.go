package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"

	"github.com/yallarent/yallarent/config"
	"github.com/yallarent/yallarent/internal/notify"
	"github.com/yallarent/yallarent/internal/store"
)

// StoreProvider provides access to the collection store.
type StoreProvider interface {
	Store() *store.Store
}

// ConfigProvider provides application configuration.
type ConfigProvider interface {
	Config() *config.AppConfig
}

// NotifierProvider provides the outgoing-mail notifier.
type NotifierProvider interface {
	Notifier() *notify.Notifier
}

// SchedulerProvider provides task scheduling capability.
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BusProvider provides the application event bus.
type BusProvider interface {
	Bus() EventBus.Bus
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	StoreProvider
	ConfigProvider
	NotifierProvider
	SchedulerProvider
	BusProvider

	// BackupStore writes a timestamped snapshot of every collection under
	// the workdir and prunes old backup files.
	BackupStore() error
}
