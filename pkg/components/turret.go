package components

// TurretComponent 防御炮台
//
// 炮台是拦截弹的发射源，也是来袭导弹的攻击目标之一
// 全部炮台被摧毁时游戏失败
type TurretComponent struct {
	Index int // 炮台编号（0 起，从左到右）

	Ammo    int // 当前弹药量，范围 [0, MaxAmmo]
	MaxAmmo int // 弹药上限（波次结算时补满）

	// Destroyed 是否已被摧毁
	// 摧毁后不能开火、不能被选中，弹药量不再有意义
	Destroyed bool
}
