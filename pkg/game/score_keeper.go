package game

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
)

// highScoreProperty 最高分在存储中的属性名（对象名为游戏 ID）
const highScoreProperty = "highScore"

// ScoreKeeper 计分、连击与最高分持久化
//
// 连击规则：
//   - 每次得分命中 Combo+1，并把失效时刻推迟到 now + grace
//   - 未命中或超过宽限时间，Combo 归零
//   - 得分 = floor(基础分 × (1 + Combo × step))，Combo 取命中前的值
type ScoreKeeper struct {
	session    *Session
	store      Store // 可为 nil（降级模式，不持久化）
	object     string
	comboStep  float64
	comboGrace float64
	persisted  int  // 存储中的最高分
	loaded     bool // persisted 是否已从存储读取
}

// NewScoreKeeper 创建计分器
func NewScoreKeeper(session *Session, store Store, object string, comboStep, comboGrace float64) *ScoreKeeper {
	return &ScoreKeeper{
		session:    session,
		store:      store,
		object:     object,
		comboStep:  comboStep,
		comboGrace: comboGrace,
	}
}

// LoadHighScore 读取持久化的最高分
// 不存在或数据损坏时视为 0
func (k *ScoreKeeper) LoadHighScore() int {
	k.persisted = 0
	k.loaded = true
	if k.store != nil {
		data, err := k.store.Load(k.object, highScoreProperty)
		switch {
		case err == nil:
			v, perr := strconv.Atoi(strings.TrimSpace(string(data)))
			if perr != nil || v < 0 {
				log.Printf("[ScoreKeeper] Warning: corrupt high score %q for %s, using 0", data, k.object)
			} else {
				k.persisted = v
			}
		case errors.Is(err, ErrNotFound):
		default:
			log.Printf("[ScoreKeeper] Warning: failed to load high score: %v", err)
		}
	}
	if k.persisted > k.session.HighScore {
		k.session.HighScore = k.persisted
	}
	return k.session.HighScore
}

// HighScore 当前最高分（含本局尚未保存的成绩）
func (k *ScoreKeeper) HighScore() int {
	return k.session.HighScore
}

// RecordScore 累加分数（可为负），同步更新内存中的最高分
func (k *ScoreKeeper) RecordScore(delta int) {
	k.session.Score += delta
	if k.session.Score > k.session.HighScore {
		k.session.HighScore = k.session.Score
	}
}

// ScoreHit 结算一次得分命中，返回实际得分
func (k *ScoreKeeper) ScoreHit(base int, now float64) int {
	multiplier := 1 + float64(k.session.Combo)*k.comboStep
	points := int(math.Floor(float64(base) * multiplier))
	k.RecordScore(points)
	k.RegisterHit(now)
	return points
}

// RegisterHit 连击 +1 并刷新宽限时间
func (k *ScoreKeeper) RegisterHit(now float64) {
	k.session.Combo++
	if k.session.Combo > k.session.MaxCombo {
		k.session.MaxCombo = k.session.Combo
	}
	k.session.ComboDeadline = now + k.comboGrace
}

// BreakCombo 连击归零
func (k *ScoreKeeper) BreakCombo() {
	k.session.Combo = 0
	k.session.ComboDeadline = 0
}

// ExpireCombo 超过宽限时间时连击归零，返回是否发生了归零
func (k *ScoreKeeper) ExpireCombo(now float64) bool {
	if k.session.Combo > 0 && now >= k.session.ComboDeadline {
		k.BreakCombo()
		return true
	}
	return false
}

// TrySaveHighScore 本局分数超过已保存的最高分时写入存储
// 多次调用是幂等的，存储中的值永远不会变小
func (k *ScoreKeeper) TrySaveHighScore() bool {
	if !k.loaded {
		k.LoadHighScore()
	}
	score := k.session.Score
	if k.store == nil || score <= k.persisted {
		return false
	}
	if err := k.store.Save(k.object, highScoreProperty, []byte(strconv.Itoa(score))); err != nil {
		log.Printf("[ScoreKeeper] Warning: failed to save high score: %v", err)
		return false
	}
	k.persisted = score
	log.Printf("[ScoreKeeper] New high score for %s: %d", k.object, score)
	return true
}
