// validate-config 检查游戏 YAML 配置能否加载并通过校验
//
// 用法:
//
//	go run ./cmd/validate-config            # 检查 data/
//	go run ./cmd/validate-config -dir mydir
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/decker502/arcade/pkg/games"
)

func main() {
	dir := flag.String("dir", games.DefaultConfigDir, "配置目录")
	flag.Parse()

	cfgs, err := games.LoadConfigs(*dir)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}

	bb := cfgs.BugBlaster
	fmt.Printf("✅ bugblaster.yaml: %.0fx%.0f, %d 种虫子, Boss 每 %d 波\n",
		bb.Playfield.Width, bb.Playfield.Height, len(bb.Categories), bb.Boss.Every)
	for _, c := range bb.Categories {
		trait := "-"
		if c.Trait != nil {
			trait = c.Trait.Kind
		}
		fmt.Printf("   %-10s 第 %d 波解锁  权重 %-3d 生命 %d  特性 %s\n", c.Name, c.UnlockWave, c.Weight, c.Health, trait)
	}
	fmt.Printf("   音效: %v\n", soundNames(bb.Sounds))

	mc := cfgs.Machine
	fmt.Printf("✅ machine.yaml: %.0fx%.0f, %d 种心情, %d 种动作\n",
		mc.Playfield.Width, mc.Playfield.Height, len(mc.Moods), len(mc.Actions))
	fmt.Printf("   音效: %v\n", soundNames(mc.Sounds))
}

func soundNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
