package entity

// Meta 分页元数据
type Meta struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
}

// LastPage 返回最后一页的页码，没有数据时为 1
func (m *Meta) LastPage() int64 {
	if m == nil || m.PageSize <= 0 || m.Total <= 0 {
		return 1
	}
	return (m.Total + m.PageSize - 1) / m.PageSize
}

// Acknowledgment 是写操作的统一确认响应
type Acknowledgment struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
