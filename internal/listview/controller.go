package listview

import (
	"context"
	"errors"
	"net/url"
	"sync"
)

// ListAnchor 翻页后页面滚动到的列表区域锚点
const ListAnchor = "list"

var (
	// ErrPageOutOfRange 总页数已知时请求了范围外的页码，不会发起请求
	ErrPageOutOfRange = errors.New("listview: page out of range")
	// ErrStale 响应属于已被后续请求取代的旧请求，结果被丢弃
	ErrStale = errors.New("listview: stale response discarded")
)

// Phase 列表状态
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	}
	return "initial"
}

// Filters 列表筛选条件，空值视为未设置
type Filters map[string]string

func (f Filters) Get(key string) string {
	return f[key]
}

func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Values 转成查询参数，跳过空值
func (f Filters) Values() url.Values {
	v := url.Values{}
	for k, val := range f {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Key 稳定的字符串形式，用作缓存键
func (f Filters) Key() string {
	return f.Values().Encode()
}

// Equal 比较时忽略空值
func (f Filters) Equal(other Filters) bool {
	return f.Key() == other.Key()
}

type Query struct {
	Page     int
	PageSize int
	Filters  Filters
}

type Page[T any] struct {
	Items []T
	Total int
}

// Source 列表数据来源
type Source[T any] interface {
	Fetch(ctx context.Context, q Query) (Page[T], error)
}

type SourceFunc[T any] func(ctx context.Context, q Query) (Page[T], error)

func (f SourceFunc[T]) Fetch(ctx context.Context, q Query) (Page[T], error) {
	return f(ctx, q)
}

// Controller 分页列表的状态机：抓取、翻页、筛选、重试
type Controller[T any] struct {
	mu     sync.Mutex
	source Source[T]

	phase      Phase
	items      []T
	page       int
	pageSize   int
	total      int
	totalPages int
	known      bool
	err        error

	defaults Filters
	applied  Filters
	pending  Filters

	// 每次发起请求递增，只接受最新一代的响应
	gen uint64
}

func New[T any](source Source[T], pageSize int, defaults Filters) *Controller[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Controller[T]{
		source:   source,
		page:     1,
		pageSize: pageSize,
		defaults: defaults.Clone(),
		applied:  defaults.Clone(),
		pending:  defaults.Clone(),
	}
}

// FetchPage 抓取指定页。总页数已知且筛选条件未变时，范围外的页码直接返回 ErrPageOutOfRange
func (c *Controller[T]) FetchPage(ctx context.Context, page int, filters Filters) error {
	if filters == nil {
		filters = Filters{}
	}

	c.mu.Lock()
	if page < 1 {
		c.mu.Unlock()
		return ErrPageOutOfRange
	}
	if c.known && filters.Equal(c.applied) && page > max(c.totalPages, 1) {
		c.mu.Unlock()
		return ErrPageOutOfRange
	}
	c.gen++
	gen := c.gen
	c.phase = PhaseLoading
	c.page = page
	c.applied = filters.Clone()
	q := Query{Page: page, PageSize: c.pageSize, Filters: filters.Clone()}
	c.mu.Unlock()

	res, err := c.source.Fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrStale
	}
	if err != nil {
		// 保留上一次成功的数据和分页，供重试
		c.phase = PhaseError
		c.err = err
		return err
	}
	c.phase = PhaseSuccess
	c.err = nil
	c.items = res.Items
	if c.items == nil {
		c.items = []T{}
	}
	c.total = res.Total
	c.totalPages = TotalPages(res.Total, c.pageSize)
	c.known = true
	return nil
}

// ApplyFilters 提交筛选条件并回到第一页。filters 为 nil 时提交当前的待定条件
func (c *Controller[T]) ApplyFilters(ctx context.Context, filters Filters) error {
	c.mu.Lock()
	if filters != nil {
		c.pending = filters.Clone()
	}
	next := c.pending.Clone()
	c.mu.Unlock()
	return c.FetchPage(ctx, 1, next)
}

// ResetFilters 恢复默认筛选并回到第一页
func (c *Controller[T]) ResetFilters(ctx context.Context) error {
	c.mu.Lock()
	c.pending = c.defaults.Clone()
	next := c.defaults.Clone()
	c.mu.Unlock()
	return c.FetchPage(ctx, 1, next)
}

// ChangePage 翻页，筛选条件保持不变。返回需要滚动到的锚点
func (c *Controller[T]) ChangePage(ctx context.Context, n int) (string, error) {
	c.mu.Lock()
	if !c.known || n < 1 || n > c.totalPages {
		c.mu.Unlock()
		return "", ErrPageOutOfRange
	}
	filters := c.applied.Clone()
	c.mu.Unlock()
	return ListAnchor, c.FetchPage(ctx, n, filters)
}

// Retry 用相同的页码和筛选重新抓取
func (c *Controller[T]) Retry(ctx context.Context) error {
	c.mu.Lock()
	page, filters := c.page, c.applied.Clone()
	c.mu.Unlock()
	return c.FetchPage(ctx, page, filters)
}

// Seed 用之前响应里得到的总数预置分页，让范围外的页码在请求前就被拒绝
func (c *Controller[T]) Seed(filters Filters, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = filters.Clone()
	c.pending = filters.Clone()
	c.total = total
	c.totalPages = TotalPages(total, c.pageSize)
	c.known = true
}

// SetPending 修改待定筛选条件，不触发请求
func (c *Controller[T]) SetPending(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" {
		delete(c.pending, key)
		return
	}
	c.pending[key] = value
}

func (c *Controller[T]) Pending() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.Clone()
}

func (c *Controller[T]) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied.Clone()
}

func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller[T]) PageSize() int {
	return c.pageSize
}

func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// Known 是否已经知道总数
func (c *Controller[T]) Known() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.known
}

func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Pager 当前页的分页条
func (c *Controller[T]) Pager() Pager {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewPager(c.page, c.totalPages)
}
