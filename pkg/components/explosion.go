package components

// ExplosionKind 爆炸类型
// 不同类型的爆炸最大半径不同：拦截 > 连锁 > 撞击
type ExplosionKind int

const (
	// ExplosionIntercept 拦截弹引爆产生的爆炸（最大）
	ExplosionIntercept ExplosionKind = iota
	// ExplosionChain 导弹被摧毁时产生的连锁爆炸（中等）
	ExplosionChain
	// ExplosionImpact 导弹落地撞击产生的爆炸（最小）
	ExplosionImpact
)

// ExplosionComponent 范围伤害爆炸区域
//
// 生命周期：半径从 0 增长到 MaxRadius（Growing=true），
// 随后收缩到 ≤0 并销毁。增长速率大于收缩速率，
// 因此增长阶段短于收缩阶段
type ExplosionComponent struct {
	Kind ExplosionKind // 爆炸类型

	Radius    float64 // 当前半径（像素），增长阶段恒 ≥0
	MaxRadius float64 // 最大半径（像素）

	// Growing 是否处于增长阶段
	// true: 半径递增至 MaxRadius 后翻转为 false
	// false: 半径递减，≤0 时爆炸销毁
	Growing bool

	GrowthRate float64 // 每 16ms 参考帧的半径增量
	ShrinkRate float64 // 每 16ms 参考帧的半径减量
}
