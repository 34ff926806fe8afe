package components

import "time"

// WavePhase 波次阶段
// 每波经历 生成 → 清场 → 过渡 三个阶段后进入下一波
type WavePhase int

const (
	// WaveSpawning 生成阶段：配额未满，生成系统可创建导弹
	WaveSpawning WavePhase = iota
	// WaveDraining 清场阶段：配额已满但场上仍有来袭导弹，停止生成
	WaveDraining
	// WaveTransitioning 过渡阶段：配额已满且场上无导弹，
	// 结算奖励并等待固定真实时间后进入下一波
	WaveTransitioning
)

// WaveStateComponent 波次状态组件
//
// 挂载在战场的专用实体上（每局唯一），由 WaveSystem 独占维护
type WaveStateComponent struct {
	// WaveNumber 当前波次号（1 起）
	WaveNumber int

	// Spawned 本波已生成的导弹数
	Spawned int

	// Quota 本波导弹配额，跨波次只增不减
	Quota int

	// Phase 当前波次阶段
	Phase WavePhase

	// SpawnTimerMs 距上次生成导弹的累计时间（毫秒）
	SpawnTimerMs float64

	// TransitionDeadline 过渡阶段结束的真实时刻
	// 进入 WaveTransitioning 时按时钟设定，到达后推进下一波
	TransitionDeadline time.Time

	// Generation 过渡计时的代际令牌
	// 重新开局时递增，旧代际的到期事件一律丢弃，
	// 防止过期的波次推进作用到新会话上
	Generation uint64
}
