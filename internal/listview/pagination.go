package listview

// TotalPages 向上取整，总数为 0 时为 0
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// PageItem 分页条上的一个位置，Ellipsis 为省略号
type PageItem struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// Window 分页条规则：首页和末页总是显示，当前页前后各两页；
// 相邻显示页之间空出三页及以上时用一个省略号，空一两页时直接展开
func Window(current, total int) []PageItem {
	if total <= 0 {
		return nil
	}
	current = min(max(current, 1), total)

	shown := make([]int, 0, 7)
	add := func(n int) {
		if n >= 1 && n <= total && (len(shown) == 0 || shown[len(shown)-1] < n) {
			shown = append(shown, n)
		}
	}
	add(1)
	for n := current - 2; n <= current+2; n++ {
		add(n)
	}
	add(total)

	items := make([]PageItem, 0, len(shown)+4)
	prev := 0
	for _, n := range shown {
		if gap := n - prev - 1; prev > 0 && gap >= 3 {
			items = append(items, PageItem{Ellipsis: true})
		} else if prev > 0 {
			for m := prev + 1; m < n; m++ {
				items = append(items, PageItem{Number: m})
			}
		}
		items = append(items, PageItem{Number: n, Current: n == current})
		prev = n
	}
	return items
}

// Pager 模板使用的分页条数据
type Pager struct {
	Current    int
	TotalPages int
	Items      []PageItem
	HasPrev    bool
	HasNext    bool
	Prev       int
	Next       int
}

func NewPager(current, totalPages int) Pager {
	return Pager{
		Current:    current,
		TotalPages: totalPages,
		Items:      Window(current, totalPages),
		HasPrev:    current > 1,
		HasNext:    current < totalPages,
		Prev:       current - 1,
		Next:       current + 1,
	}
}

// Show 只有一页时不显示分页条
func (p Pager) Show() bool {
	return p.TotalPages > 1
}
