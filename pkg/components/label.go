package components

// LabelComponent 敌人头顶显示的单词标签
// 敌人被击中进入死亡状态时立即隐藏
type LabelComponent struct {
	Text   string
	Hidden bool
}
