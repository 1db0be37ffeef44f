package config

import (
	"fmt"
	"os"

	"github.com/decker502/arcade/pkg/embedded"
)

// readConfigFile 读取配置文件
// 优先从嵌入资源读取（发布版本），不存在时回退到磁盘文件（开发、测试、-config 参数）
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded config %s: %w", path, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return data, nil
}
