package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource 记录每次查询，按 total 生成数据
type fakeSource struct {
	mu      sync.Mutex
	total   int
	err     error
	queries []Query
}

func (s *fakeSource) Fetch(_ context.Context, q Query) (Page[string], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.err != nil {
		return Page[string]{}, s.err
	}
	var items []string
	start := (q.Page - 1) * q.PageSize
	for i := start; i < start+q.PageSize && i < s.total; i++ {
		items = append(items, fmt.Sprintf("item-%d", i))
	}
	return Page[string]{Items: items, Total: s.total}, nil
}

func (s *fakeSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func (s *fakeSource) last() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[len(s.queries)-1]
}

func TestFetchPageSuccess(t *testing.T) {
	src := &fakeSource{total: 10}
	ctrl := New[string](src, 4, Filters{"sort_by": "time"})
	assert.Equal(t, PhaseInitial, ctrl.Phase())

	require.NoError(t, ctrl.FetchPage(context.Background(), 2, Filters{"sort_by": "time", "category": "科技"}))

	assert.Equal(t, PhaseSuccess, ctrl.Phase())
	assert.Equal(t, 3, ctrl.TotalPages())
	assert.Equal(t, 10, ctrl.Total())
	assert.Equal(t, []string{"item-4", "item-5", "item-6", "item-7"}, ctrl.Items())
	assert.Equal(t, Query{Page: 2, PageSize: 4, Filters: Filters{"sort_by": "time", "category": "科技"}}, src.last())
}

func TestOutOfRangePageMakesNoRequest(t *testing.T) {
	src := &fakeSource{total: 10}
	ctrl := New[string](src, 4, nil)
	filters := Filters{"category": "科技"}
	require.NoError(t, ctrl.FetchPage(context.Background(), 2, filters))
	require.Equal(t, 1, src.calls())

	err := ctrl.FetchPage(context.Background(), 4, filters)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	err = ctrl.FetchPage(context.Background(), 0, filters)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	assert.Equal(t, 1, src.calls())
	assert.Equal(t, 2, ctrl.Page())
	assert.Equal(t, PhaseSuccess, ctrl.Phase())
}

func TestChangePageKeepsFilters(t *testing.T) {
	src := &fakeSource{total: 25}
	ctrl := New[string](src, 10, nil)
	filters := Filters{"status": "进行中", "search": "峰会"}
	require.NoError(t, ctrl.FetchPage(context.Background(), 1, filters))

	anchor, err := ctrl.ChangePage(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, ListAnchor, anchor)
	assert.Equal(t, 3, ctrl.Page())
	assert.Equal(t, filters, ctrl.Filters())
	assert.Equal(t, filters, src.last().Filters)

	for _, n := range []int{0, -1, 4} {
		anchor, err = ctrl.ChangePage(context.Background(), n)
		assert.ErrorIs(t, err, ErrPageOutOfRange)
		assert.Empty(t, anchor)
	}
	assert.Equal(t, 2, src.calls())
	assert.Equal(t, filters, ctrl.Filters())
}

func TestChangePageBeforeFirstFetchIsNoop(t *testing.T) {
	src := &fakeSource{total: 25}
	ctrl := New[string](src, 10, nil)

	_, err := ctrl.ChangePage(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	assert.Zero(t, src.calls())
}

func TestApplyFiltersResetsPage(t *testing.T) {
	src := &fakeSource{total: 50}
	ctrl := New[string](src, 10, Filters{"sort_by": "time"})
	require.NoError(t, ctrl.FetchPage(context.Background(), 1, Filters{"sort_by": "time"}))
	_, err := ctrl.ChangePage(context.Background(), 4)
	require.NoError(t, err)

	ctrl.SetPending("category", "体育")
	assert.Equal(t, Filters{"sort_by": "time"}, ctrl.Filters(), "pending edits are not applied yet")
	assert.Equal(t, Filters{"sort_by": "time", "category": "体育"}, ctrl.Pending())

	require.NoError(t, ctrl.ApplyFilters(context.Background(), nil))
	assert.Equal(t, 1, ctrl.Page())
	assert.Equal(t, Filters{"sort_by": "time", "category": "体育"}, ctrl.Filters())
	assert.Equal(t, 1, src.last().Page)
}

func TestResetFiltersRestoresDefaults(t *testing.T) {
	src := &fakeSource{total: 50}
	ctrl := New[string](src, 10, Filters{"sort_by": "time"})
	require.NoError(t, ctrl.ApplyFilters(context.Background(), Filters{"sort_by": "hotness", "category": "财经"}))
	_, err := ctrl.ChangePage(context.Background(), 2)
	require.NoError(t, err)

	require.NoError(t, ctrl.ResetFilters(context.Background()))
	assert.Equal(t, 1, ctrl.Page())
	assert.Equal(t, Filters{"sort_by": "time"}, ctrl.Filters())
	assert.Equal(t, Filters{"sort_by": "time"}, ctrl.Pending())
}

func TestErrorPreservesLastItemsAndRetry(t *testing.T) {
	src := &fakeSource{total: 30}
	ctrl := New[string](src, 10, nil)
	require.NoError(t, ctrl.FetchPage(context.Background(), 1, nil))
	before := ctrl.Items()

	boom := errors.New("网络请求失败")
	src.err = boom
	_, err := ctrl.ChangePage(context.Background(), 2)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, PhaseError, ctrl.Phase())
	assert.ErrorIs(t, ctrl.Err(), boom)
	assert.Equal(t, before, ctrl.Items())
	assert.Equal(t, 3, ctrl.TotalPages())

	src.err = nil
	require.NoError(t, ctrl.Retry(context.Background()))
	assert.Equal(t, PhaseSuccess, ctrl.Phase())
	assert.Nil(t, ctrl.Err())
	assert.Equal(t, 2, src.last().Page)
	assert.Equal(t, []string{"item-10", "item-11", "item-12", "item-13", "item-14", "item-15", "item-16", "item-17", "item-18", "item-19"}, ctrl.Items())
}

func TestEmptyResultAllowsRefetchOfFirstPage(t *testing.T) {
	src := &fakeSource{total: 0}
	ctrl := New[string](src, 10, nil)
	require.NoError(t, ctrl.FetchPage(context.Background(), 1, nil))
	assert.Equal(t, 0, ctrl.TotalPages())
	assert.Equal(t, []string{}, ctrl.Items())

	require.NoError(t, ctrl.Retry(context.Background()))
	assert.Equal(t, 2, src.calls())
}

func TestSeedRejectsOutOfRangeBeforeRequest(t *testing.T) {
	src := &fakeSource{total: 10}
	ctrl := New[string](src, 4, nil)
	filters := Filters{"category": "科技"}
	ctrl.Seed(filters, 10)

	_, err := ctrl.ChangePage(context.Background(), 4)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	assert.Zero(t, src.calls())

	_, err = ctrl.ChangePage(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls())
}

// blockingSource 第一次调用阻塞直到 release 被关闭
type blockingSource struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	inner   *fakeSource
}

func (s *blockingSource) Fetch(ctx context.Context, q Query) (Page[string], error) {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.entered)
		<-s.release
	}
	return s.inner.Fetch(ctx, q)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	src := &blockingSource{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		inner:   &fakeSource{total: 30},
	}
	ctrl := New[string](src, 10, nil)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.FetchPage(context.Background(), 1, Filters{"category": "旧"})
	}()
	<-src.entered

	require.NoError(t, ctrl.FetchPage(context.Background(), 2, Filters{"category": "新"}))
	close(src.release)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Equal(t, 2, ctrl.Page())
	assert.Equal(t, Filters{"category": "新"}, ctrl.Filters())
	assert.Equal(t, "item-10", ctrl.Items()[0])
	assert.Equal(t, PhaseSuccess, ctrl.Phase())
}
