package cache

// 缓存 key
const (
	KeyDashboard     = "dashboard:v1"
	KeyCategoryTree  = "categories:tree:v1"
	KeyPublicBanners = "banners:public:v1"
)
