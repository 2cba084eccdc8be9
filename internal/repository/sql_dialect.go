package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// escapeLike 转义 LIKE 通配符。
func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// prefixLikeCondition 构建前缀匹配条件，兼容 sqlite 与 postgres。
func prefixLikeCondition(db *gorm.DB, column string) string {
	return prefixLikeConditionByDialect(dbDialectName(db), column)
}

func prefixLikeConditionByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return fmt.Sprintf(`%s LIKE ? ESCAPE E'\\'`, column)
	default:
		return fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, column)
	}
}
