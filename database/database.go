package database

import (
	"sync"

	"github.com/rpupo63/blog-cms-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db       *gorm.DB
	postRepo *PostRepo
	seedOnce *sync.Once
}

// New initializes a new Database struct sharing a single GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:       db,
		postRepo: NewPostRepo(db),
		seedOnce: &sync.Once{},
	}
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

// Migrate creates the posts table and applies the additive section migration:
// pre-existing tables without a section column get one with a 'blog' default,
// and rows written before the column existed are backfilled.
func (d Database) Migrate() error {
	migrator := d.db.Migrator()
	needsBackfill := migrator.HasTable(&models.Post{}) && !migrator.HasColumn(&models.Post{}, "section")

	if err := d.db.AutoMigrate(&models.Post{}); err != nil {
		return err
	}

	if needsBackfill {
		err := d.db.Model(&models.Post{}).
			Where("section IS NULL OR section = ''").
			Update("section", models.SectionBlog).Error
		if err != nil {
			return err
		}
	}

	return nil
}
