package components

// CollisionComponent 以实体位置为中心的命中盒（像素）
// Offset 正值向右、向下平移盒子
type CollisionComponent struct {
	Width, Height    float64
	OffsetX, OffsetY float64
}
