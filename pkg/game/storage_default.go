//go:build !android

package game

// ensureStorageDir 其他平台由 gdata 自行创建目录
func ensureStorageDir(appName string) error {
	return nil
}
