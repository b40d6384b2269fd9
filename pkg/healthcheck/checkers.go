package healthcheck

import (
	"context"

	"gorm.io/gorm"
)

// Database returns a checker that pings the underlying SQL connection.
func Database(db *gorm.DB) Checker {
	return CheckerFunc(func(ctx context.Context) Check {
		sqlDB, err := db.DB()
		if err != nil {
			return Check{Status: StatusUnhealthy, Message: err.Error()}
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return Check{Status: StatusUnhealthy, Message: err.Error()}
		}
		return Check{Status: StatusHealthy}
	})
}
