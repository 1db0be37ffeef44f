// Package games 汇总可玩的小游戏，供桌面/移动端与终端宿主共用
package games

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/games/bugblaster"
	"github.com/decker502/arcade/pkg/games/machine"
)

// DefaultConfigDir 内置配置所在目录（嵌入资源的前缀）
const DefaultConfigDir = "data"

// StoreName 持久化目录名（gdata 应用名），所有宿主共用同一份存档
const StoreName = "arcade"

// Entry 菜单中的一个游戏
type Entry struct {
	ID    string
	Title string
	Blurb string
	Help  string // 一行操作说明
}

// Entries 菜单顺序
var Entries = []Entry{
	{
		ID:    bugblaster.ID,
		Title: "Bug Blaster",
		Blurb: "Squash the bugs before they escape",
		Help:  "click bugs  space pause  r reset  esc menu",
	},
	{
		ID:    machine.ID,
		Title: "Useless Machine",
		Blurb: "It really does not want to be bothered",
		Help:  "click it  1-7 mood  0 random  t tantrum  s stop",
	},
}

// Lookup 按 ID 查找游戏
func Lookup(id string) (Entry, bool) {
	for _, e := range Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Configs 所有游戏的配置
type Configs struct {
	BugBlaster *config.BugBlasterConfig
	Machine    *config.MachineConfig
}

// LoadConfigs 从 dir 读取每个游戏的 YAML 配置
// dir 为 DefaultConfigDir 时优先使用嵌入资源
func LoadConfigs(dir string) (*Configs, error) {
	if dir == "" {
		dir = DefaultConfigDir
	}
	bb, err := config.LoadBugBlasterConfig(filepath.ToSlash(filepath.Join(dir, "bugblaster.yaml")))
	if err != nil {
		return nil, fmt.Errorf("bug blaster config: %w", err)
	}
	mc, err := config.LoadMachineConfig(filepath.ToSlash(filepath.Join(dir, "machine.yaml")))
	if err != nil {
		return nil, fmt.Errorf("machine config: %w", err)
	}
	log.Printf("[Games] Loaded configs from %s", dir)
	return &Configs{BugBlaster: bb, Machine: mc}, nil
}

// DefaultConfigs 不读取文件的内置默认配置（测试与配置缺失时使用）
func DefaultConfigs() *Configs {
	return &Configs{
		BugBlaster: config.DefaultBugBlasterConfig(),
		Machine:    config.DefaultMachineConfig(),
	}
}

// Instance 一个已创建的游戏：引擎加规则
type Instance struct {
	Entry  Entry
	Engine *engine.Engine
	Rules  engine.Rules
}

// New 创建指定游戏的引擎并调用 Init
func New(id string, cfgs *Configs, host engine.Host) (*Instance, error) {
	entry, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown game %q", id)
	}

	var (
		rules engine.Rules
		ecfg  engine.Config
		err   error
	)
	switch id {
	case bugblaster.ID:
		if rules, err = bugblaster.New(cfgs.BugBlaster, host.Store); err != nil {
			return nil, err
		}
		ecfg, err = bugblaster.EngineConfig(cfgs.BugBlaster)
	case machine.ID:
		if rules, err = machine.New(cfgs.Machine); err != nil {
			return nil, err
		}
		ecfg, err = machine.EngineConfig(cfgs.Machine)
	}
	if err != nil {
		return nil, err
	}

	e := engine.New(ecfg, rules, host)
	e.Init()
	return &Instance{Entry: entry, Engine: e, Rules: rules}, nil
}

// Summary 菜单显示的存档摘要
type Summary struct {
	Best         int
	CanContinue  bool
	Achievements []string
}

// Summarize 不创建引擎，直接从存储读取最高分、快照与成就
func Summarize(store game.Store, id string) Summary {
	if store == nil {
		return Summary{}
	}
	best := game.NewScoreKeeper(game.NewSession(1), store, id, 0, 0).LoadHighScore()
	return Summary{
		Best:         best,
		CanContinue:  game.NewSessionSerializer(store, id, 1).HasSnapshot(),
		Achievements: game.NewAchievementManager(store, id).Unlocked(),
	}
}

// ShareText 复制到剪贴板的成绩文字
func ShareText(inst *Instance) string {
	w := inst.Engine.World()
	return fmt.Sprintf("I scored %d in %s (best %d)!", w.Session.Score, inst.Entry.Title, w.Score.HighScore())
}
