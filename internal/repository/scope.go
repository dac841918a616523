package repository

import "gorm.io/gorm"

// orgScope ограничивает выборку строками одной организации.
// Строгое сравнение: legacy-строки без organization_id не проходят —
// миграция заполняет колонку, как только появляются организации.
func orgScope(orgID *int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if orgID == nil {
			return db
		}
		return db.Where("organization_id = ?", *orgID)
	}
}

// orgScopeShared допускает строки без организации: ожидания (и оценки
// при явном фильтре) без привязки видимы всем организациям.
func orgScopeShared(orgID *int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if orgID == nil {
			return db
		}
		return db.Where("organization_id = ? OR organization_id IS NULL", *orgID)
	}
}

// orgPreference выбирает одну строку ожидания: без организации видна
// только общая строка; с организацией — своя приоритетнее общей
func orgPreference(orgID *int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if orgID == nil {
			return db.Where("organization_id IS NULL")
		}
		return db.Where("organization_id = ? OR organization_id IS NULL", *orgID).
			Order("(organization_id IS NULL) ASC")
	}
}

// skillOrgScope ограничивает навыки транзитивно: сначала видимые
// компетенции организации, затем навыки из их состава
func skillOrgScope(orgID *int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if orgID == nil {
			return db
		}
		return db.Joins("JOIN competencies ON competencies.id = skills.competency_id").
			Where("competencies.organization_id = ? OR competencies.organization_id IS NULL", *orgID)
	}
}

// matchOrg возвращает условие точного совпадения организации,
// где nil означает отсутствие привязки
func matchOrg(db *gorm.DB, orgID *int64) *gorm.DB {
	if orgID == nil {
		return db.Where("organization_id IS NULL")
	}
	return db.Where("organization_id = ?", *orgID)
}
