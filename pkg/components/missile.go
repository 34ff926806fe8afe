package components

// IncomingMissileComponent 敌方来袭导弹
//
// 导弹沿起点到目标点的直线做插值运动：
// 位置 = lerp(起点, 目标点, Progress)，Progress 单调递增
// Progress 达到 1.0 时导弹命中目标（Arrived 置位，本帧由碰撞系统结算）
type IncomingMissileComponent struct {
	StartX  float64 // 发射起点X（屏幕顶部随机位置）
	StartY  float64 // 发射起点Y
	TargetX float64 // 目标点X（炮台或城市的坐标）
	TargetY float64 // 目标点Y

	// Speed 每 16ms 参考帧推进的进度量
	// 速度随波次和难度单调递增
	Speed float64

	// Progress 飞行进度，范围 [0,1]，只增不减
	Progress float64

	// Arrived 本帧是否到达目标（Progress 跨越 1.0 时置位一次）
	// 由碰撞系统消费：摧毁目标并生成撞击爆炸
	Arrived bool

	// Destroyed 是否已被爆炸摧毁
	// 同一帧内多个爆炸覆盖同一导弹时，首个命中生效（防止重复计分）
	Destroyed bool
}
