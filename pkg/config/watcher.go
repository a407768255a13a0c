package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce 最后一次写入之后等待的时间（编辑器保存常触发多次写入）
const watchDebounce = 100 * time.Millisecond

// Watcher 监听磁盘上的 game.yaml，修改后重新解析并通过 Configs 发送
//
// 监听的是文件所在目录而不是文件本身，这样编辑器通过重命名替换文件时
// 仍能收到事件。解析失败的配置通过 Errors 发送，不会替换当前配置。
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Configs chan *GameConfig
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher 创建配置文件监听器
// 参数：
//
//	path - 要监听的 game.yaml 路径
//
// 返回：
//
//	*Watcher - 监听器，使用完毕后必须调用 Close
//	error - 无法创建 fsnotify 监听或目录不存在时返回
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		Configs: make(chan *GameConfig, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	log.Printf("[ConfigWatcher] Watching %s", abs)
	return w, nil
}

// Close 停止监听，可重复调用
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// run 事件循环
// 每个匹配事件都把去抖计时器推迟 watchDebounce，窗口内最后一个事件之后才重新读取，
// 分多次写入的保存因此只在写完后解析一次
func (w *Watcher) run() {
	defer close(w.done)

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			debounce.Reset(watchDebounce)
		case <-debounce.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

// reload 重新读取并解析配置，只保留最新的一份
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// 重命名替换过程中文件可能暂时不存在，等待后续 Create 事件
		if os.IsNotExist(err) {
			return
		}
		w.sendError(fmt.Errorf("failed to read %s: %w", w.path, err))
		return
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		w.sendError(fmt.Errorf("failed to reload %s: %w", w.path, err))
		return
	}

	// 丢弃尚未被消费的旧配置
	select {
	case <-w.Configs:
	default:
	}
	select {
	case w.Configs <- cfg:
		log.Printf("[ConfigWatcher] Reloaded %s", w.path)
	case <-w.closeCh:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
		log.Printf("[ConfigWatcher] Dropped error: %v", err)
	}
}
