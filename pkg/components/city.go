package components

// CityComponent 被保护的城市
//
// 城市只作为来袭导弹的攻击目标，本局内摧毁不可恢复
// 波次结算时每座幸存城市奖励固定分数
type CityComponent struct {
	Index int // 城市编号（0 起，从左到右）

	// Destroyed 是否已被摧毁（终态，本局内不可修复）
	Destroyed bool
}
