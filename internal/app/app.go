package app

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yallarent/yallarent/config"
	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/notify"
	"github.com/yallarent/yallarent/internal/store"
)

// Application is the root composition: it owns the store, the event bus,
// the notifier and the cron scheduler, and hands them to consumers through
// the provider interfaces. Nothing in the repository holds ambient global
// collection state.
type Application struct {
	appConfig *config.AppConfig
	store     *store.Store
	bus       EventBus.Bus
	sched     *cron.Cron
	notifier  *notify.Notifier

	// dirty is set on any store mutation and cleared by a completed backup,
	// so the nightly job skips unchanged nights.
	dirty atomic.Bool
}

var (
	_ StoreProvider    = (*Application)(nil)
	_ ConfigProvider   = (*Application)(nil)
	_ NotifierProvider = (*Application)(nil)
	_ AppContext       = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *store.Store {
	return a.store
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

func (a *Application) Notifier() *notify.Notifier {
	return a.notifier
}

// Scheduler returns the cron scheduler.
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// OverrideStore replaces the application's store handle (used in tests).
func (a *Application) OverrideStore(s *store.Store) {
	a.store = s
}

// Init brings the application up: timezone, logger, durable store with all
// collections settled, default operator, event subscriptions and jobs. It
// returns only once every collection is usable, so the web server can start
// serving immediately afterwards.
func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		return err
	}

	a.bus = EventBus.New()
	a.notifier = notify.New(cfg.Smtp)

	storePath := cfg.Store.Path
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(cfg.System.Workdir, storePath)
	}
	seeder := store.NewSeeder(cfg.Store)
	a.store, err = store.Open(storePath, seeder, a.bus)
	if err != nil {
		return err
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.store.Initialize(initCtx); err != nil {
		return err
	}
	zap.S().Infof("store initialized, %d cars, %d customers, %d bookings",
		len(a.store.Cars()), len(a.store.Customers()), len(a.store.Bookings()))

	a.checkSuper()
	a.subscribeEvents()
	a.initJob()
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		filename := cfg.Logger.Filename
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(cfg.System.Workdir, filename)
		}
		lumberJackLogger := &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}

// subscribeEvents wires the bus consumers: the backup dirty marker and the
// best-effort new-booking alert.
func (a *Application) subscribeEvents() {
	_ = a.bus.Subscribe(store.TopicStoreChanged, func(collection, action string) {
		a.markDirty()
		zap.S().Debugf("store changed: %s %s", collection, action)
	})
	_ = a.bus.SubscribeAsync(store.TopicBookingCreated, func(b domain.Booking) {
		to := a.store.SiteConfig().Contact.Email
		if to == "" {
			return
		}
		if err := a.notifier.SendBookingAlert(to, b); err != nil && err != notify.ErrDisabled {
			zap.S().Warnf("booking alert mail failed: %s", err)
		}
	}, false)
}

// Release releases application resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = zap.L().Sync()
}
