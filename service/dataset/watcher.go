/*
 * @module service/dataset/watcher
 * @description 数据集重载触发器：监听源CSV文件变更并支持Cron周期性重载
 * @architecture 基于Go协程的监听器模式
 * @documentReference dev_docs/dashboard_requirements.md
 * @stateFlow 文件写入事件/定时触发 -> 去抖 -> 调用加载服务重载
 * @rules 只响应目标文件的写入事件；按修改时间去抖避免编辑器多次写入引发重复加载
 * @dependencies github.com/fsnotify/fsnotify, github.com/robfig/cron/v3
 * @refs service/dataset/dataset_service.go, service/init.go
 */

package dataset

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
)

// Watcher 数据集重载触发器
type Watcher struct {
	service *Service
	watcher *fsnotify.Watcher
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	lastMod time.Time
}

// NewWatcher 创建重载触发器实例
func NewWatcher(service *Service) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		service: service,
		cron:    cron.New(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start 启动文件监听与可选的Cron周期重载
// cronSpec为空时不启用周期重载
func (w *Watcher) Start(cronSpec string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}

	// 监听所在目录而不是文件本身，覆盖"先删后写"式的文件替换
	dir := filepath.Dir(w.service.SourcePath())
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("监听目录失败: %w", err)
	}
	w.watcher = watcher

	go w.watchLoop()
	log.Printf("数据文件监听已启动: dir=%s file=%s", dir, w.service.SourcePath())

	if cronSpec != "" {
		if _, err := w.cron.AddFunc(cronSpec, func() {
			if _, err := w.service.Reload("cron"); err != nil {
				log.Printf("周期性数据集重载失败: %v", err)
			}
		}); err != nil {
			return fmt.Errorf("注册周期重载任务失败: %w", err)
		}
		w.cron.Start()
		log.Printf("周期性数据集重载已启动: spec=%s", cronSpec)
	}

	return nil
}

// Stop 停止监听与定时任务
func (w *Watcher) Stop() {
	w.cancel()
	if w.watcher != nil {
		w.watcher.Close()
	}
	if w.cron != nil {
		w.cron.Stop()
	}
	log.Println("数据集重载触发器已停止")
}

// watchLoop 消费文件系统事件，目标文件被写入后触发重载
func (w *Watcher) watchLoop() {
	target, _ := filepath.Abs(w.service.SourcePath())

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, _ := filepath.Abs(event.Name)
			if name != target {
				continue
			}
			if !w.markChanged() {
				continue
			}
			go func() {
				if _, err := w.service.Reload("watch"); err != nil {
					log.Printf("文件变更触发的数据集重载失败: %v", err)
				}
			}()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("文件监听错误: %v", err)
		case <-w.ctx.Done():
			return
		}
	}
}

// markChanged 按修改时间去抖，仅在文件确有更新时返回true
func (w *Watcher) markChanged() bool {
	info, err := os.Stat(w.service.SourcePath())
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !info.ModTime().After(w.lastMod) {
		return false
	}
	w.lastMod = info.ModTime()
	return true
}
