package components

// InterceptorComponent 玩家发射的拦截弹
//
// 与来袭导弹遵循相同的插值运动规律
// Progress 达到 1.0 时在目标点引爆，生成拦截爆炸
type InterceptorComponent struct {
	StartX  float64 // 发射炮台的炮口坐标X
	StartY  float64 // 发射炮台的炮口坐标Y
	TargetX float64 // 玩家点击的目标点X
	TargetY float64 // 玩家点击的目标点Y

	// Speed 每 16ms 参考帧推进的进度量（拦截弹远快于来袭导弹）
	Speed float64

	// Progress 飞行进度，范围 [0,1]，只增不减
	Progress float64

	// Arrived 本帧是否到达目标（Progress 跨越 1.0 时置位一次）
	// 由碰撞系统消费：在目标点生成拦截爆炸
	Arrived bool
}
