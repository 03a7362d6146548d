package store

import (
	"database/sql"
	"errors"
	"time"

	"campusportal/db"
	"campusportal/models"
)

// PageSize is the fixed number of items per catalog page.
const PageSize = 6

// ItemPage is one page of the public item listing.
type ItemPage struct {
	Items      []models.Item
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

func CreateItem(title, description string) (int64, error) {
	result, err := db.DB.Exec("INSERT INTO items (title, description, created_at) VALUES (?, ?, ?)",
		title, nullableText(description), time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func ItemByID(id int64) (models.Item, error) {
	var item models.Item
	err := db.DB.QueryRow("SELECT id, title, COALESCE(description, ''), created_at FROM items WHERE id = ?", id).
		Scan(&item.ID, &item.Title, &item.Description, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrNotFound
	}
	return item, err
}

func UpdateItem(id int64, title, description string) error {
	result, err := db.DB.Exec("UPDATE items SET title = ?, description = ? WHERE id = ?",
		title, nullableText(description), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func DeleteItem(id int64) error {
	result, err := db.DB.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ListItems returns one page of items, newest first. A page below 1 is
// treated as 1; a page past the end yields an empty page rather than
// an error.
func ListItems(page int) (ItemPage, error) {
	if page < 1 {
		page = 1
	}

	var total int
	if err := db.DB.QueryRow("SELECT COUNT(*) FROM items").Scan(&total); err != nil {
		return ItemPage{}, err
	}

	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	rows, err := db.DB.Query(
		"SELECT id, title, COALESCE(description, ''), created_at FROM items ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		PageSize, (page-1)*PageSize)
	if err != nil {
		return ItemPage{}, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.CreatedAt); err != nil {
			return ItemPage{}, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return ItemPage{}, err
	}

	return ItemPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   page - 1,
		NextPage:   page + 1,
	}, nil
}

// nullableText stores blank strings as NULL so an empty description
// means "no description" rather than an empty one.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
