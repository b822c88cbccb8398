package entity

import "time"

const (
	UsageOrderAsc  = "asc"
	UsageOrderDesc = "desc"
)

// DbResponseTemplate 用户保存的可复用回复模板
type DbResponseTemplate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Content    string  `gorm:"column:content;type:text;not null" json:"content"`
	Type       *string `gorm:"column:type;type:varchar(255);index" json:"type"`
	UsageCount int64   `gorm:"column:usage_count;not null;default:0;index" json:"usage_count"`

	UserID uint    `gorm:"column:user_id;not null;index" json:"user_id"`
	User   *DbUser `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	// 由仓库层批量加载，不直接映射列
	Categories []DbCategory `gorm:"-" json:"categories"`
}

// TableName 指定表名
func (DbResponseTemplate) TableName() string {
	return "response_templates"
}

// DbCategoryResponseTemplate 分类与模板的多对多关联表
type DbCategoryResponseTemplate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CategoryID         uint `gorm:"column:category_id;not null;uniqueIndex:category_response_template_unique,priority:1" json:"category_id"`
	ResponseTemplateID uint `gorm:"column:response_template_id;not null;uniqueIndex:category_response_template_unique,priority:2;index" json:"response_template_id"`

	Category         *DbCategory         `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	ResponseTemplate *DbResponseTemplate `gorm:"foreignKey:ResponseTemplateID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (DbCategoryResponseTemplate) TableName() string {
	return "category_response_template"
}

// ResponseTemplateQuery lists one user's templates. UserID and PageSize are set by the server.
type ResponseTemplateQuery struct {
	Page       int64  `json:"page" form:"page" query:"page"`
	Name       string `json:"name" form:"name" query:"name"`
	Type       string `json:"type" form:"type" query:"type"`
	CategoryID uint   `json:"category_id" form:"category_id" query:"category_id"`
	UsageOrder string `json:"usage_order" form:"usage_order" query:"usage_order"`
	PageSize   int64  `json:"-" form:"-" query:"-"`
	UserID     uint   `json:"-" form:"-" query:"-"`
}

// ResponseTemplateRequest is the payload for creating or replacing a template.
// A nil CategoryIDs means the field was not supplied.
type ResponseTemplateRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Content     string  `json:"content" validate:"required"`
	Type        *string `json:"type" validate:"omitempty,max=255"`
	CategoryIDs *[]uint `json:"category_ids"`
}

type ResponseTemplateItem struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Content    string     `json:"content"`
	Type       *string    `json:"type"`
	UsageCount int64      `json:"usage_count"`
	UserID     uint       `json:"user_id"`
	Categories []Category `json:"categories"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ResponseTemplatePage struct {
	Data []ResponseTemplateItem `json:"data"`
	Meta *Meta                  `json:"meta"`
}

// DashboardFilters echoes the applied filters so clients can keep them across pages.
type DashboardFilters struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	CategoryID *uint  `json:"category_id"`
	UsageOrder string `json:"usage_order"`
}

type DashboardResponse struct {
	ResponseTemplates ResponseTemplatePage `json:"response_templates"`
	Categories        []Category           `json:"categories"`
	Types             []string             `json:"types"`
	Filters           DashboardFilters     `json:"filters"`
}

// CopyResponse is returned by the copy endpoint.
type CopyResponse struct {
	Content    string `json:"content"`
	UsageCount int64  `json:"usage_count"`
}
