package store

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Generation is one history record of a generated deck.
type Generation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `json:"title"`
	Filename  string    `json:"filename"`
	Slides    int       `json:"slides"`
	Fallback  bool      `json:"fallback"`
	CreatedAt time.Time `json:"created_at"`
}

// InitDB opens the sqlite database and runs migrations.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Generation{}); err != nil {
		return nil, err
	}
	return db, nil
}

// History records and lists past generations.
type History struct {
	db *gorm.DB
}

func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

func (h *History) Record(g *Generation) error {
	return h.db.Create(g).Error
}

// Recent returns the newest records first, at most limit of them.
func (h *History) Recent(limit int) ([]Generation, error) {
	var records []Generation
	err := h.db.Order("created_at desc, id desc").Limit(limit).Find(&records).Error
	return records, err
}
