package entity

import "github.com/carbonview/energy-review/internal/domain/review"

// SeedSubmissions returns the fixture dataset used to initialize the
// record store when no snapshot exists, and by the reset operation.
// A fresh slice of fresh values is returned on every call so callers
// can never alias the fixtures.
func SeedSubmissions() []SubmissionRecord {
	seeds := []SubmissionRecord{
		{
			ID:             "sub_001",
			UserID:         "1",
			UserName:       "王小明",
			UserDepartment: "研發部",
			CategoryID:     "diesel",
			CategoryName:   "柴油",
			Scope:          1,
			Status:         review.StatusApproved,
			SubmissionDate: "2024-03-15",
			ReviewDate:     "2024-03-16",
			Amount:         150.5,
			Unit:           "公升",
			CO2Emission:    375.25,
			Reviewer:       "張主管",
			Comments:       "數據正確，已核准",
			Priority:       "medium",
		},
		{
			ID:             "sub_002",
			UserID:         "2",
			UserName:       "李美華",
			UserDepartment: "行銷部",
			CategoryID:     "electricity",
			CategoryName:   "外購電力",
			Scope:          2,
			Status:         review.StatusSubmitted,
			SubmissionDate: "2024-03-18",
			Amount:         2850,
			Unit:           "度",
			CO2Emission:    1425,
			Priority:       "high",
		},
		{
			ID:             "sub_003",
			UserID:         "3",
			UserName:       "張志豪",
			UserDepartment: "財務部",
			CategoryID:     "employee_commute",
			CategoryName:   "員工通勤",
			Scope:          3,
			Status:         review.StatusSubmitted,
			SubmissionDate: "2024-03-20",
			Amount:         45.2,
			Unit:           "公里",
			CO2Emission:    9.04,
			Priority:       "low",
		},
		{
			ID:             "sub_004",
			UserID:         "4",
			UserName:       "陳雅婷",
			UserDepartment: "人資部",
			CategoryID:     "natural_gas",
			CategoryName:   "天然氣",
			Scope:          1,
			Status:         review.StatusRejected,
			SubmissionDate: "2024-03-10",
			ReviewDate:     "2024-03-12",
			Amount:         80.3,
			Unit:           "立方公尺",
			CO2Emission:    160.6,
			Reviewer:       "林主管",
			Comments:       "數據來源不明確，請重新提交",
			Priority:       "medium",
			ReviewNotes:    "填報數據異常偏高，請確認是否有誤並提供相關證明文件。",
			ReviewedAt:     "2024-03-12 15:30",
			ReviewerID:     "admin_001",
		},
		{
			ID:             "sub_005",
			UserID:         "5",
			UserName:       "林俊傑",
			UserDepartment: "業務部",
			CategoryID:     "gasoline",
			CategoryName:   "汽油",
			Scope:          1,
			Status:         review.StatusApproved,
			SubmissionDate: "2024-03-12",
			ReviewDate:     "2024-03-13",
			Amount:         120.8,
			Unit:           "公升",
			CO2Emission:    278.84,
			Reviewer:       "張主管",
			Comments:       "符合標準，已核准",
			Priority:       "medium",
		},
		{
			ID:             "sub_006",
			UserID:         "6",
			UserName:       "黃詩涵",
			UserDepartment: "設計部",
			CategoryID:     "lpg",
			CategoryName:   "液化石油氣",
			Scope:          1,
			Status:         review.StatusSubmitted,
			SubmissionDate: "2024-03-19",
			Amount:         25.6,
			Unit:           "公斤",
			CO2Emission:    76.8,
			Priority:       "low",
		},
		{
			ID:             "sub_007",
			UserID:         "7",
			UserName:       "劉建國",
			UserDepartment: "生產部",
			CategoryID:     "diesel_generator",
			CategoryName:   "柴油(固定源)",
			Scope:          1,
			Status:         review.StatusSubmitted,
			SubmissionDate: "2024-03-21",
			Amount:         200,
			Unit:           "公升",
			CO2Emission:    522,
			Priority:       "high",
		},
		{
			ID:             "sub_008",
			UserID:         "8",
			UserName:       "楊雅琪",
			UserDepartment: "品管部",
			CategoryID:     "electricity",
			CategoryName:   "外購電力",
			Scope:          2,
			Status:         review.StatusApproved,
			SubmissionDate: "2024-03-14",
			ReviewDate:     "2024-03-15",
			Amount:         1850,
			Unit:           "度",
			CO2Emission:    925,
			Reviewer:       "陳主管",
			Priority:       "medium",
		},
	}

	out := make([]SubmissionRecord, len(seeds))
	copy(out, seeds)
	return out
}
