package domain

type ListQuery struct {
	Skip int
	Take int
}

type ListMeta struct {
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Take  int   `json:"take"`
}

type ListResult[T any] struct {
	Data []T      `json:"data"`
	Meta ListMeta `json:"meta"`
}

// NewListResult take 缺省时回退为本页实际行数
func NewListResult[T any](items []T, total int64, q ListQuery) *ListResult[T] {
	take := q.Take
	if take <= 0 {
		take = len(items)
	}
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{
		Data: items,
		Meta: ListMeta{Total: total, Skip: q.Skip, Take: take},
	}
}
