package handlers

import (
	"sync"

	"peekweb/internal/apiclient"

	"golang.org/x/sync/errgroup"
)

// fetchGroup 页面内的并行请求。等全部返回后再选错误：
// 只要有一个 401 就按 401 处理，否则取最先出现的错误
type fetchGroup struct {
	g            errgroup.Group
	mu           sync.Mutex
	unauthorized error
}

func (f *fetchGroup) Go(fn func() error) {
	f.g.Go(func() error {
		err := fn()
		if apiclient.IsUnauthorized(err) {
			f.mu.Lock()
			if f.unauthorized == nil {
				f.unauthorized = err
			}
			f.mu.Unlock()
		}
		return err
	})
}

func (f *fetchGroup) Wait() error {
	err := f.g.Wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unauthorized != nil {
		return f.unauthorized
	}
	return err
}
