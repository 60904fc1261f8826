package database

import "embed"

// MigrationSQL 嵌入建表、触发器、RLS 迁移脚本
//
//go:embed migrations/*.sql
var MigrationSQL embed.FS

// MigrationRoot 嵌入文件系统中的迁移目录
const MigrationRoot = "migrations"
