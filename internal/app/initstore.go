package app

import (
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/pkg/common"
)

// checkSuper seeds the default back-office operator on first run. The
// password comes from the environment so deployments never ship the
// development default.
func (a *Application) checkSuper() {
	const superUsername = "admin"

	if _, ok := a.store.GetOperatorByUsername(superUsername); ok {
		return
	}

	defaultPassword := os.Getenv("YALLARENT_ADMIN_PASSWORD")
	if defaultPassword == "" {
		defaultPassword = "yallarent"
		zap.S().Warn("YALLARENT_ADMIN_PASSWORD not set, using development default")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default operator password", zap.Error(err))
		return
	}

	if _, err := a.store.CreateOperator(domain.SysOpr{
		ID:        common.UUIDint64(),
		Realname:  "administrator",
		Mobile:    "0000",
		Email:     "N/A",
		Username:  superUsername,
		Password:  string(hash),
		Level:     domain.OperatorLevelSuper,
		Status:    domain.ENABLED,
		Remark:    "super",
		LastLogin: time.Now(),
	}); err != nil {
		zap.L().Error("failed to create default super admin", zap.Error(err))
		return
	}
	zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
}
