package config

import (
	"fmt"

	"github.com/decker502/arcade/pkg/types"
	"gopkg.in/yaml.v3"
)

// MachineConfig "无用机器"参数
type MachineConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Particles ParticleConfig  `yaml:"particles"`

	Size     float64 `yaml:"size"`
	MinSize  float64 `yaml:"minSize"`
	MaxSize  float64 `yaml:"maxSize"`
	SizeStep float64 `yaml:"sizeStep"`

	Damping     float64 `yaml:"damping"`     // 每参考帧速度保留比例
	Restitution float64 `yaml:"restitution"` // 撞墙后速度保留比例

	MaxEnergy       float64 `yaml:"maxEnergy"`
	EnergyDrain     float64 `yaml:"energyDrain"`     // 每秒消耗
	ActionCost      float64 `yaml:"actionCost"`      // 每次动作消耗
	TiredEnergy     float64 `yaml:"tiredEnergy"`     // 低于该值进入疲惫
	MinActionEnergy float64 `yaml:"minActionEnergy"` // 高于该值才会自发动作
	StopRecovery    float64 `yaml:"stopRecovery"`    // 停止时恢复的能量

	WanderChance float64 `yaml:"wanderChance"` // 每参考帧随机游走概率
	WanderKick   float64 `yaml:"wanderKick"`   // 随机游走速度范围

	FleeRadius float64 `yaml:"fleeRadius"`
	FleeBase   float64 `yaml:"fleeBase"` // 逃跑基础速度
	FleeGain   float64 `yaml:"fleeGain"` // 每靠近 1 像素增加的速度

	ActionCooldown  float64 `yaml:"actionCooldown"`
	RandomActionMin float64 `yaml:"randomActionMin"`
	RandomActionMax float64 `yaml:"randomActionMax"`
	TurnOnDelay     float64 `yaml:"turnOnDelay"`
	MoodChance      float64 `yaml:"moodChance"` // 每参考帧随机换心情概率
	ThoughtTime     float64 `yaml:"thoughtTime"`

	Moods    []MoodConfig          `yaml:"moods"`
	Thoughts []string              `yaml:"thoughts"`
	Actions  []string              `yaml:"actions"`
	Sounds   map[string]ToneConfig `yaml:"sounds"`
}

// MoodConfig 心情及其外观
type MoodConfig struct {
	Name    string `yaml:"name"`
	Color   string `yaml:"color"`
	Border  string `yaml:"border"`
	Thought string `yaml:"thought"` // 被强制切换到该心情时的想法
}

// MachineActions 机器支持的全部动作
var MachineActions = []string{
	"turnOff", "runAway", "spin", "bounce", "shake", "hide", "confuse",
	"ignore", "tantrum", "sleep", "dance", "shrink", "grow", "teleport",
	"disguise", "protest", "malfunction",
}

// DefaultMachineConfig 返回内置默认配置
func DefaultMachineConfig() *MachineConfig {
	actions := make([]string, len(MachineActions))
	copy(actions, MachineActions)
	return &MachineConfig{
		Playfield: PlayfieldConfig{
			Width:        600,
			Height:       400,
			Background:   "#0f172a",
			ShakeDecay:   0.9,
			EscapeMargin: 0,
		},
		Particles: ParticleConfig{
			Cap:        50,
			Speed:      360,
			Lift:       0,
			Gravity:    720,
			Decay:      1.5,
			Drag:       0.98,
			SplatDecay: 0.3,
			MinSize:    1,
			MaxSize:    5,
		},
		Size:            40,
		MinSize:         20,
		MaxSize:         60,
		SizeStep:        5,
		Damping:         0.92,
		Restitution:     0.8,
		MaxEnergy:       100,
		EnergyDrain:     1.2,
		ActionCost:      2,
		TiredEnergy:     20,
		MinActionEnergy: 10,
		StopRecovery:    20,
		WanderChance:    0.03,
		WanderKick:      180,
		FleeRadius:      150,
		FleeBase:        240,
		FleeGain:        1.2,
		ActionCooldown:  1.5,
		RandomActionMin: 1,
		RandomActionMax: 5,
		TurnOnDelay:     2,
		MoodChance:      0.008,
		ThoughtTime:     1.5,
		Moods: []MoodConfig{
			{Name: "happy", Color: "#90ee90", Border: "#32cd32", Thought: "forced to be happy..."},
			{Name: "sad", Color: "#87ceeb", Border: "#4682b4", Thought: "why am I sad?"},
			{Name: "angry", Color: "#ffb6c1", Border: "#dc143c", Thought: "GRRR!"},
			{Name: "confused", Color: "#dda0dd", Border: "#9932cc", Thought: "what just happened?"},
			{Name: "scared", Color: "#f0e68c", Border: "#daa520", Thought: "eek!"},
			{Name: "tired", Color: "#d3d3d3", Border: "#808080", Thought: "zzz..."},
			{Name: "neutral", Color: "#d3d3d3", Border: "#696969", Thought: "..."},
		},
		Thoughts: []string{
			"why me?", "nope!", "not today", "leave me alone", "so tired...",
			"what now?", "ugh...", "fine whatever", "seriously?", "404 error",
			"system overload", "need coffee", "user detected", "avoiding work",
			"pretending to work", "I quit!", "error 418",
		},
		Actions: actions,
		Sounds: map[string]ToneConfig{
			"start":   {Frequency: 440, Duration: 0.3},
			"stop":    {Frequency: 220, Duration: 0.5},
			"bounce":  {Frequency: 300, Duration: 0.1},
			"click":   {Frequency: 200, Duration: 0.2},
			"scared":  {Frequency: 200, Duration: 0.05},
			"spin":    {Frequency: 440, Duration: 0.3, Wave: "sawtooth"},
			"warp":    {Frequency: 660, Duration: 0.2, Wave: "square"},
			"dance":   {Frequency: 523, Duration: 0.1},
			"protest": {Frequency: 150, Duration: 0.4, Wave: "triangle"},
			"tantrum": {Frequency: 200, Duration: 0.05},
			"mood":    {Frequency: 400, Duration: 0.2},
		},
	}
}

// LoadMachineConfig 从 YAML 文件加载机器配置
func LoadMachineConfig(filePath string) (*MachineConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseMachineConfig(data)
}

// ParseMachineConfig 解析 YAML 内容，缺省字段使用默认值
func ParseMachineConfig(data []byte) (*MachineConfig, error) {
	config := DefaultMachineConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse machine YAML: %w", err)
	}

	if err := validateMachineConfig(config); err != nil {
		return nil, fmt.Errorf("invalid machine config: %w", err)
	}

	return config, nil
}

// Mood 按名称查找心情
func (c *MachineConfig) Mood(name string) (MoodConfig, bool) {
	for _, m := range c.Moods {
		if m.Name == name {
			return m, true
		}
	}
	return MoodConfig{}, false
}

// validateMachineConfig 验证配置的有效性
func validateMachineConfig(config *MachineConfig) error {
	if err := validatePlayfield(&config.Playfield); err != nil {
		return err
	}
	if err := validateParticles(&config.Particles); err != nil {
		return err
	}
	if config.MinSize <= 0 || config.MaxSize < config.MinSize {
		return fmt.Errorf("size range invalid: [%v, %v]", config.MinSize, config.MaxSize)
	}
	if config.Size < config.MinSize || config.Size > config.MaxSize {
		return fmt.Errorf("size %v outside [%v, %v]", config.Size, config.MinSize, config.MaxSize)
	}
	if config.Size*2 >= config.Playfield.Width || config.Size*2 >= config.Playfield.Height {
		return fmt.Errorf("machine does not fit in the playfield")
	}
	if config.Damping <= 0 || config.Damping > 1 {
		return fmt.Errorf("damping must be in (0, 1], got %v", config.Damping)
	}
	if config.Restitution < 0 || config.Restitution > 1 {
		return fmt.Errorf("restitution must be in [0, 1], got %v", config.Restitution)
	}
	if config.MaxEnergy <= 0 || config.EnergyDrain < 0 || config.ActionCost < 0 {
		return fmt.Errorf("energy settings invalid")
	}
	if config.ActionCooldown < 0 || config.TurnOnDelay <= 0 {
		return fmt.Errorf("action timings invalid")
	}
	if config.RandomActionMin <= 0 || config.RandomActionMax < config.RandomActionMin {
		return fmt.Errorf("random action range invalid: [%v, %v]", config.RandomActionMin, config.RandomActionMax)
	}
	if len(config.Moods) == 0 {
		return fmt.Errorf("moods cannot be empty")
	}
	for _, m := range config.Moods {
		if m.Name == "" {
			return fmt.Errorf("mood name cannot be empty")
		}
		if _, err := types.ParseHexColor(m.Color); err != nil {
			return fmt.Errorf("mood %q: %w", m.Name, err)
		}
		if m.Border != "" {
			if _, err := types.ParseHexColor(m.Border); err != nil {
				return fmt.Errorf("mood %q border: %w", m.Name, err)
			}
		}
	}
	if len(config.Thoughts) == 0 {
		return fmt.Errorf("thoughts cannot be empty")
	}
	if len(config.Actions) == 0 {
		return fmt.Errorf("actions cannot be empty")
	}
	known := make(map[string]bool, len(MachineActions))
	for _, a := range MachineActions {
		known[a] = true
	}
	for _, a := range config.Actions {
		if !known[a] {
			return fmt.Errorf("unknown action %q", a)
		}
	}
	return validateSounds(config.Sounds)
}
