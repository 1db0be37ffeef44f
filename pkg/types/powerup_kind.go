package types

import "fmt"

// PowerUpKind 道具类型
type PowerUpKind int

const (
	PowerUpUnknown PowerUpKind = iota
	// PowerUpAutofire 定时自动射击最早出现的虫子
	PowerUpAutofire
	// PowerUpSlowmo 虫子减速
	PowerUpSlowmo
	// PowerUpShield 逃逸的虫子不扣命
	PowerUpShield
	// PowerUpMultishot 对 Boss 造成双倍伤害
	PowerUpMultishot
	// PowerUpNuke 立即清屏
	PowerUpNuke
	// PowerUpFreeze 冻结所有虫子与 Boss
	PowerUpFreeze
)

var powerUpNames = map[PowerUpKind]string{
	PowerUpAutofire:  "autofire",
	PowerUpSlowmo:    "slowmo",
	PowerUpShield:    "shield",
	PowerUpMultishot: "multishot",
	PowerUpNuke:      "nuke",
	PowerUpFreeze:    "freeze",
}

func (k PowerUpKind) String() string {
	if name, ok := powerUpNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParsePowerUpKind 从配置名称解析道具类型
func ParsePowerUpKind(name string) (PowerUpKind, error) {
	for k, n := range powerUpNames {
		if n == name {
			return k, nil
		}
	}
	return PowerUpUnknown, fmt.Errorf("unknown power-up %q", name)
}
