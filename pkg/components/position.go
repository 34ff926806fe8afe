package components

// PositionComponent 存储实体的世界坐标
// 所有可渲染、可碰撞的实体都持有此组件
type PositionComponent struct {
	X float64 // 世界坐标X（像素）
	Y float64 // 世界坐标Y（像素）
}
