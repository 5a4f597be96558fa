package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped 表示 pool 已停止，不再接受工作
var ErrStopped = errors.New("worker pool stopped")

// Task 交給 pool 執行的一段工作
type Task func()

// Pool 固定數量 worker 的工作池，用來限制 CPU 密集工作（bcrypt）的並行數
type Pool interface {
	// Submit 阻塞到有 worker 接手為止；ctx 取消或 pool 停止時放棄並回傳錯誤
	Submit(ctx context.Context, t Task) error
	// Stop 等待已被接手的工作完成；可重複呼叫
	Stop()
}

// NewPool 建立 n 個 worker，n<=0 視為 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task), quit: make(chan struct{})}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

type pool struct {
	jobs chan Task
	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func (p *pool) work() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			if job != nil {
				job()
			}
		case <-p.quit:
			return
		}
	}
}

// jobs 從不關閉，停止只透過 quit 通知，避免送到已關閉的 channel
func (p *pool) Submit(ctx context.Context, t Task) error {
	select {
	case <-p.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case p.jobs <- t:
		return nil
	case <-p.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pool) Stop() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}
