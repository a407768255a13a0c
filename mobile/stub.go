//go:build !mobile

// Package mobile 桌面构建下只保留 Dummy，绑定代码见 mobile.go
package mobile

// Dummy 让 ebitenmobile 能识别本包
func Dummy() {}
