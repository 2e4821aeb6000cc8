package model

// SchemaMeta 数据库结构版本记录，迁移门闸使用
type SchemaMeta struct {
	ID            int64 `gorm:"primaryKey" json:"id"`
	SchemaVersion int   `gorm:"not null" json:"schema_version"`
}

// TableName 指定表名
func (SchemaMeta) TableName() string {
	return "schema_meta"
}
