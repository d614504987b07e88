package entity

// categoryMap is the fixed page key → category name table. A key absent
// from this table is a hard failure, never a best-effort fallback.
var categoryMap = map[string]string{
	"wd40":              "WD-40",
	"acetylene":         "乙炔",
	"refrigerant":       "冷媒",
	"septic_tank":       "化糞池",
	"natural_gas":       "天然氣",
	"urea":              "尿素",
	"diesel_generator":  "柴油(固定源)",
	"diesel":            "柴油(移動源)",
	"gasoline":          "汽油",
	"sf6":               "六氟化硫",
	"generator_test":    "發電機測試資料",
	"lpg":               "液化石油氣",
	"fire_extinguisher": "滅火器",
	"welding_rod":       "焊條",
	"electricity":       "外購電力",
	"employee_commute":  "員工通勤",
}

// fileOnlyPages lists reporting categories whose validity does not
// depend on a positive numeric total (evidence-only uploads).
var fileOnlyPages = map[string]bool{
	"septic_tank":       true,
	"fire_extinguisher": true,
}

// CategoryFromPageKey resolves the category name for a page key.
// The second return value is false for unknown keys.
func CategoryFromPageKey(pageKey string) (string, bool) {
	name, ok := categoryMap[pageKey]
	return name, ok
}

// IsFileOnlyPage returns true for pages exempt from the positive-total rule
func IsFileOnlyPage(pageKey string) bool {
	return fileOnlyPages[pageKey]
}

// CommonRejectReasons are the canned reasons offered to reviewers when
// returning a submission.
var CommonRejectReasons = []string{
	"資料不完整",
	"證明文件缺失",
	"數據異常",
	"格式錯誤",
	"計量單位錯誤",
	"數值超出合理範圍",
	"缺少必要檔案",
}
