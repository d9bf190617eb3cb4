package postgres

import (
	"fmt"

	"loreweave-api/internal/domain/entity"
)

// AutoMigrate 同步全部表结构
func (c *Client) AutoMigrate() error {
	models := []any{
		&entity.World{},
		&entity.Page{},
		&entity.Essay{},
		&entity.Character{},
		&entity.Story{},
		&entity.Image{},
		&entity.Tag{},
		&entity.ContentTag{},
		&entity.ContentLink{},
		&entity.UserProfile{},
	}
	if err := c.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
