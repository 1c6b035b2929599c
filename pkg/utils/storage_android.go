//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// storageSubdir 设置和记录所在的子目录
const storageSubdir = "saves"

// EnsureStorageDir 在 gdata 打开之前创建设置和记录使用的 saves 目录，并确认可写
// gdata 在 Android 上以 /data/data/{package}/ 为根目录，但不会创建子目录。
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return fmt.Errorf("detect android package: %w", errNoPackage)
	}

	dir := filepath.Join(root, storageSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		return fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	f.Close()
	return os.Remove(f.Name())
}

// GetStoragePath 应用私有目录，无法识别包名时返回空字符串
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	pkg, err := packageFromCmdline(data)
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
