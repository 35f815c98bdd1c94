package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"
)

const backupDirName = "backup"

func (a *Application) markDirty() {
	a.dirty.Store(true)
}

// initJob starts the cron scheduler: a nightly store backup (skipped when no
// mutation happened since the last one) and an hourly system-metrics line.
func (a *Application) initJob() {
	a.sched = cron.New(cron.WithLocation(time.Local))

	_, err := a.sched.AddFunc("@daily", func() {
		if !a.dirty.Load() {
			zap.S().Debug("store unchanged since last backup, skipping")
			return
		}
		if err := a.BackupStore(); err != nil {
			zap.L().Error("store backup failed", zap.Error(err))
			return
		}
		a.dirty.Store(false)
	})
	if err != nil {
		zap.L().Error("failed to schedule backup job", zap.Error(err))
	}

	_, err = a.sched.AddFunc("@hourly", a.logSystemMetrics)
	if err != nil {
		zap.L().Error("failed to schedule metrics job", zap.Error(err))
	}

	a.sched.Start()
}

// BackupStore writes the raw value of every stored key to a timestamped
// JSON document under the workdir and prunes backups beyond the retention
// count.
func (a *Application) BackupStore() error {
	snapshot, err := a.store.Snapshot()
	if err != nil {
		return err
	}
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal store snapshot")
	}

	dir := filepath.Join(a.appConfig.System.Workdir, backupDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create backup dir")
	}
	name := fmt.Sprintf("store-%s.json", time.Now().Format("20060102T150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "write backup file")
	}
	zap.S().Infof("store backup written: %s (%d bytes)", path, len(data))

	return a.pruneBackups(dir)
}

func (a *Application) pruneBackups(dir string) error {
	keep := a.appConfig.Store.BackupKeep
	if keep <= 0 {
		keep = 7
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, "list backup dir")
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}
	// backup names sort chronologically
	sort.Strings(names)
	for _, n := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, n)); err != nil {
			zap.S().Warnf("failed to prune backup %s: %s", n, err)
		}
	}
	return nil
}

func (a *Application) logSystemMetrics() {
	percents, err := cpu.Percent(0, false)
	var cpuUse float64
	if err == nil && len(percents) > 0 {
		cpuUse = percents[0]
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		zap.S().Warnf("read memory stats failed: %s", err)
		return
	}
	zap.S().Infof("system metrics: cpu %.1f%%, mem %.1f%% (%d MB used)",
		cpuUse, vm.UsedPercent, vm.Used/1024/1024)
}
