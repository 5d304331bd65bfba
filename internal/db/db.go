package db

import (
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"plan2read/internal/plan"
)

// Connect opens postgres through the lib/pq database/sql driver so that
// constraint violations surface as *pq.Error.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connected")
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&plan.Schedule{},
		&plan.Session{},
		&plan.Post{},
		&plan.Comment{},
	); err != nil {
		return err
	}

	stmts := []string{
		// public feed and per-owner listing
		`create index if not exists idx_schedules_owner_public on schedules(user_id, is_public);`,
		// sessions are always read one schedule at a time
		`create index if not exists idx_sessions_schedule_seq on study_sessions(schedule_id, seq);`,
		`create index if not exists idx_comments_post_seq on comments(post_id, seq);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
