package entity

// CategoryUpdates 分类更新字段
type CategoryUpdates struct {
	Name *string
	Slug *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u CategoryUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u CategoryUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ResponseTemplateUpdates 模板整体替换字段，Type 为 nil 时写入 NULL
type ResponseTemplateUpdates struct {
	Name    string
	Content string
	Type    *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u ResponseTemplateUpdates) ToMap() map[string]interface{} {
	updates := map[string]interface{}{
		"name":    u.Name,
		"content": u.Content,
		"type":    nil,
	}
	if u.Type != nil {
		updates["type"] = *u.Type
	}
	return updates
}
