package components

// PositionComponent 存储实体在战场坐标系中的位置（像素）
// 敌人和投射物的 X 为中心点，Y 为所在车道的基线
type PositionComponent struct {
	X float64
	Y float64
}
