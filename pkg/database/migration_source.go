package database

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Migration 单个迁移脚本
// 文件名格式：<版本号>_<描述>.sql，例如 001_schema.sql
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// LoadMigrations 从文件系统加载迁移脚本，按版本号升序
func LoadMigrations(fsys fs.FS, root string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("读取迁移目录失败: %w", err)
	}

	var migrations []Migration
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}

		version, name, err := parseMigrationName(e.Name())
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("迁移版本 %s 重复: %s / %s", version, prev, e.Name())
		}
		seen[version] = e.Name()

		data, err := fs.ReadFile(fsys, path.Join(root, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("读取 SQL 文件 %s 失败: %w", e.Name(), err)
		}
		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			SQL:     string(data),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// LoadMigrationsFromDir 从外部目录加载（开发调试）
func LoadMigrationsFromDir(dir string) ([]Migration, error) {
	return LoadMigrations(os.DirFS(dir), ".")
}

func parseMigrationName(file string) (string, string, error) {
	base := strings.TrimSuffix(file, ".sql")
	version, name, ok := strings.Cut(base, "_")
	if !ok || version == "" || name == "" {
		return "", "", fmt.Errorf("迁移文件名格式错误: %s", file)
	}
	for _, r := range version {
		if r < '0' || r > '9' {
			return "", "", fmt.Errorf("迁移版本号必须为数字: %s", file)
		}
	}
	return version, name, nil
}
