package models

import (
	"sort"
	"time"
)

const (
	// MaxFavorites is the per-identity favorites capacity; the oldest entry
	// is evicted when a new one would exceed it.
	MaxFavorites = 5
	// MaxStoredRecentPages bounds the stored recent-page history.
	MaxStoredRecentPages = 10
	// MaxVisibleRecentPages bounds what readers surface.
	MaxVisibleRecentPages = 5
)

type FavoritePage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Path      string    `json:"page_path"`
	Title     string    `json:"page_title"`
	Icon      string    `json:"page_icon"`
	CreatedAt time.Time `json:"created_at"`
}

type RecentPage struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Path       string    `json:"page_path"`
	Title      string    `json:"page_title"`
	Icon       string    `json:"page_icon"`
	VisitedAt  time.Time `json:"visited_at"`
	VisitCount int       `json:"visit_count"`
}

// FindFavorite returns the index of path in list, or -1.
func FindFavorite(list []FavoritePage, path string) int {
	for i, f := range list {
		if f.Path == path {
			return i
		}
	}
	return -1
}

// OldestFavorite returns the index of the entry with the smallest CreatedAt,
// or -1 for an empty list. Ties keep the earlier position.
func OldestFavorite(list []FavoritePage) int {
	oldest := -1
	for i, f := range list {
		if oldest == -1 || f.CreatedAt.Before(list[oldest].CreatedAt) {
			oldest = i
		}
	}
	return oldest
}

// SortRecentByVisit orders list most-recent first. The sort is stable so
// entries with equal timestamps keep their relative order.
func SortRecentByVisit(list []RecentPage) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].VisitedAt.After(list[j].VisitedAt)
	})
}

// TopRecent returns at most n entries of list, most recent first. list is
// not modified.
func TopRecent(list []RecentPage, n int) []RecentPage {
	out := append([]RecentPage(nil), list...)
	SortRecentByVisit(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
