//go:build !mobile

package scenes

import "os"

// IsMobile 是否按触屏设备显示提示
// 桌面端可设置环境变量 ARCADE_MOBILE_EMULATE=1 模拟移动端
func IsMobile() bool {
	return os.Getenv("ARCADE_MOBILE_EMULATE") == "1"
}
