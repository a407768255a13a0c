// Package embedded 访问随程序打包的 data/ 目录
//
// go:embed 只能引用所在包目录之下的文件，所以 embed.FS 声明在仓库根目录，
// 启动时通过 Init 交给本包。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gonewx/typeabyss/pkg/config"
)

// GameConfigPath 内置战斗配置
const GameConfigPath = "data/game.yaml"

const dataPrefix = "data/"

var errNotInitialized = errors.New("embedded package not initialized, call Init() first")

var dataFS fs.FS

// Init 注入打包的文件系统，nil 表示撤销
func Init(data fs.FS) {
	dataFS = data
}

// IsInitialized 是否已经调用过 Init
func IsInitialized() bool {
	return dataFS != nil
}

// ReadFile 读取 data/ 下的文件
func ReadFile(name string) ([]byte, error) {
	clean, err := resolve(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, clean)
}

// Exists data/ 下的文件是否存在
func Exists(name string) bool {
	clean, err := resolve(name)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, clean)
	return err == nil
}

// LoadGameConfig 读取战斗配置
// override 非空时读磁盘文件，否则读内置的 data/game.yaml
func LoadGameConfig(override string) (*config.GameConfig, error) {
	if override != "" {
		return config.LoadGameConfig(override)
	}
	data, err := ReadFile(GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	return config.ParseGameConfig(data)
}

// resolve 把调用者的路径转换成 fs.FS 使用的正斜杠路径
func resolve(name string) (string, error) {
	if dataFS == nil {
		return "", errNotInitialized
	}
	clean := path.Clean(filepath.ToSlash(name))
	if !strings.HasPrefix(clean, dataPrefix) {
		return "", fmt.Errorf("resource %q is outside %s", name, dataPrefix)
	}
	return clean, nil
}
