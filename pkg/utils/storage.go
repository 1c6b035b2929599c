package utils

import (
	"bytes"
	"errors"
)

var errNoPackage = errors.New("empty process command line")

// packageFromCmdline 从 /proc/self/cmdline 的内容中取出进程名（Android 上即应用包名）
// 参数之间以 NUL 分隔，只取第一个。
func packageFromCmdline(data []byte) (string, error) {
	name, _, _ := bytes.Cut(data, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return "", errNoPackage
	}
	return string(name), nil
}
