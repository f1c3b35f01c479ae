package database

import (
	"github.com/rpupo63/blog-cms-backend/errs"
	"github.com/rpupo63/blog-cms-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedIfEmpty inserts a small set of example posts, one per section, when the
// posts table holds no rows. It runs at most once per process lifetime and
// inserts all seed rows inside a single transaction, so a failed startup can
// never leave a partially seeded table.
func (d Database) SeedIfEmpty() error {
	var seedErr error
	d.seedOnce.Do(func() {
		seedErr = d.seed()
	})
	return seedErr
}

func (d Database) seed() error {
	var count int64
	if err := d.db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	today := models.Today()
	samples := []models.Post{
		{
			ID:       "1",
			Title:    "我的第一篇文章（來自 SQLite）",
			Summary:  "這篇是預設種子文章，用來測試資料庫是否正常。",
			Content:  "# 歡迎使用 SQLite 儲存文章\n\n這篇文章來自資料庫，而不是記憶體陣列。",
			Category: "學習紀錄",
			Tags:     datatypes.NewJSONSlice([]string{"React", "Node.js"}),
			Section:  models.SectionBlog,
		},
		{
			ID:       "2",
			Title:    "交易與程式開發",
			Summary:  "把交易邏輯轉成程式與量化策略的起點。",
			Content:  "這裡可以寫你如何從專職交易走向程式交易與開發的故事。",
			Category: "交易心得",
			Tags:     datatypes.NewJSONSlice([]string{"交易", "程式交易"}),
			Section:  models.SectionTrading,
		},
		{
			ID:       "3",
			Title:    "個人網站改版紀錄",
			Summary:  "這個網站本身也是作品之一。",
			Content:  "## 改版重點\n\n前台瀏覽頁、後台編輯器，以及這個部落格 API。",
			Category: "作品",
			Tags:     datatypes.NewJSONSlice([]string{"網站"}),
			Section:  models.SectionWork,
		},
	}
	for i := range samples {
		samples[i].CreatedAt = today
		samples[i].UpdatedAt = today
	}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		for i := range samples {
			if err := tx.Create(&samples[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.NewTransactionFailedError("seed posts", err)
	}
	return nil
}
