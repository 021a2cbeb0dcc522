package storage

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	// Windows 保留设备名
	windowsDeviceNames = map[string]struct{}{
		"CON": {}, "AUX": {}, "COM1": {}, "COM2": {}, "COM3": {}, "COM4": {},
		"LPT1": {}, "LPT2": {}, "LPT3": {}, "PRN": {}, "NUL": {},
	}
)

// SecureFilename 把用户提供的文件名转换为可安全落盘的名字
//
// 先做 NFKD 分解并丢弃非 ASCII 字符，路径分隔符替换为空格，
// 空白合并为下划线，只保留 [A-Za-z0-9_.-]，去掉首尾的 '.' 和 '_'。
// 结果可能为空串，调用方需自行处理。
//
//	"My cool résumé.pdf"   -> "My_cool_resume.pdf"
//	"../../../etc/passwd" -> "etc_passwd"
func SecureFilename(name string) string {
	decomposed := norm.NFKD.String(name)

	var sb strings.Builder
	for _, r := range decomposed {
		if r < 0x80 {
			sb.WriteRune(r)
		}
	}
	name = sb.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != "" {
		base := strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name)))
		if _, reserved := windowsDeviceNames[base]; reserved {
			name = "_" + name
		}
	}
	return name
}

// Extension 返回小写且不带点的扩展名
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
