package domain

import "go-shop-admin/pkg/listview"

// 各实体“精选”口径不同，统一在这里配置
var (
	CategoryProfile = listview.Profile[Category]{
		Kind:     listview.KindCategory,
		Featured: func(c Category) bool { return c.ParentID == "" },
	}
	ProductProfile = listview.Profile[Product]{
		Kind:     listview.KindProduct,
		Featured: func(p Product) bool { return p.IsFeatured },
	}
	BannerProfile = listview.Profile[Banner]{
		Kind:     listview.KindBanner,
		Featured: func(b Banner) bool { return b.Position <= FeaturedBannerMaxPosition },
	}
	PostProfile = listview.Profile[Post]{
		Kind:     listview.KindPost,
		Featured: func(p Post) bool { return p.FeaturedImage != "" },
	}
)

// FeaturedBannerMaxPosition position <= 3 的 banner 视为首屏精选
const FeaturedBannerMaxPosition = 3
