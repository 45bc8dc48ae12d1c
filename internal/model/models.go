package model

// 所有数据库模型的统一导入点
// 用于 AutoMigrate（会话与健康记录常驻内存，不入库）
var AllModels = []interface{}{
	&User{},
	&AuthToken{},
	&KnowledgeDocument{},
}
