package domain

// Models AutoMigrate 列表
func Models() []any {
	return []any{
		&AdminUser{},
		&Category{},
		&Product{},
		&Banner{},
		&Post{},
		&Review{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Coupon{},
	}
}
