//go:build mobile

// Package mobile ebitenmobile 绑定入口
//
// 只在 -tags mobile 时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.typeabyss -o build/android/typeabyss.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/TypeAbyss.xcframework ./mobile
//
// 移动端没有命令行，会话选择全部来自已保存的启动器设置。
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/typeabyss/pkg/app"
	"github.com/gonewx/typeabyss/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{Verbose: true, StartLevel: 1})
	if err != nil {
		log.Fatalf("[Mobile] init failed: %v", err)
	}
	mobile.SetGame(gameApp)
}

// Dummy 让 ebitenmobile 能识别本包
func Dummy() {}
