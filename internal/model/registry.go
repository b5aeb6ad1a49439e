package model

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Member{},
		&GymPricing{},
		&MembershipLog{},
		&RenewalRequest{},
		&MemberDeletion{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
