package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SchemaMigration 已执行的迁移记录
type SchemaMigration struct {
	Version   string    `gorm:"primaryKey;size:32"`
	Name      string    `gorm:"size:128;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// Migrator 按版本顺序执行 SQL 迁移，每个脚本只执行一次
type Migrator struct {
	db         *gorm.DB
	log        *zap.Logger
	migrations []Migration
}

// NewMigrator 创建迁移器
func NewMigrator(db *gorm.DB, log *zap.Logger, migrations []Migration) *Migrator {
	return &Migrator{db: db, log: log, migrations: migrations}
}

// NewEmbeddedMigrator 使用内置迁移脚本创建迁移器
func NewEmbeddedMigrator(db *gorm.DB, log *zap.Logger) (*Migrator, error) {
	migrations, err := LoadMigrations(MigrationSQL, MigrationRoot)
	if err != nil {
		return nil, err
	}
	return NewMigrator(db, log, migrations), nil
}

// Up 执行所有未执行的迁移，返回本次执行数量
func (m *Migrator) Up(ctx context.Context) (int, error) {
	start := time.Now()
	db := m.db.WithContext(ctx)

	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return 0, fmt.Errorf("创建迁移记录表失败: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range m.migrations {
		if applied[mig.Version] {
			continue
		}

		m.log.Info("执行迁移", zap.String("version", mig.Version), zap.String("name", mig.Name))
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(mig.SQL).Error; err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{
				Version:   mig.Version,
				Name:      mig.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return count, fmt.Errorf("迁移 %s_%s 失败: %w", mig.Version, mig.Name, err)
		}
		count++
	}

	m.log.Info("数据库迁移完成",
		zap.Int("applied", count),
		zap.Int("total", len(m.migrations)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return count, nil
}

// Pending 返回未执行的迁移版本
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	if !m.db.WithContext(ctx).Migrator().HasTable(&SchemaMigration{}) {
		versions := make([]string, 0, len(m.migrations))
		for _, mig := range m.migrations {
			versions = append(versions, mig.Version)
		}
		return versions, nil
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, mig := range m.migrations {
		if !applied[mig.Version] {
			pending = append(pending, mig.Version)
		}
	}
	return pending, nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	var rows []SchemaMigration
	if err := m.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("读取迁移记录失败: %w", err)
	}
	applied := make(map[string]bool, len(rows))
	for _, r := range rows {
		applied[r.Version] = true
	}
	return applied, nil
}
