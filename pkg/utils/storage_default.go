//go:build !android

package utils

// EnsureStorageDir 非 Android 平台无需准备目录，gdata 会自行创建
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串
func GetStoragePath() string {
	return ""
}
