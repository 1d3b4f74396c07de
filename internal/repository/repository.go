package repository

import "gorm.io/gorm"

const batchSize = 100

// paginate counts the rows matched by query, then loads one page of them
// into dest.
func paginate(query *gorm.DB, order string, limit, offset int, dest interface{}) (int64, error) {
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	err := base.Order(order).Limit(limit).Offset(offset).Find(dest).Error
	return total, err
}
