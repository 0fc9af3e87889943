package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/acadium/dashboard/internal/client/models"
)

func printFavorites(list []models.FavoritePage) {
	if len(list) == 0 {
		printlnFn("No favorites.")
		return
	}
	for i, f := range list {
		printlnFn(fmt.Sprintf("%d. %s  %s", i+1, f.Path, f.Title))
	}
}

func printRecent(list []models.RecentPage) {
	if len(list) == 0 {
		printlnFn("No recent pages.")
		return
	}
	for i, r := range list {
		printlnFn(fmt.Sprintf("%d. %s  %s  (%d visits, last %s)", i+1, r.Path, r.Title, r.VisitCount, r.VisitedAt.Local().Format("2006-01-02 15:04")))
	}
}

// pageTitle joins the optional trailing words into a title, defaulting to path.
func pageTitle(path string, words []string) string {
	if len(words) == 0 {
		return path
	}
	return strings.Join(words, " ")
}

// Favorites manages favorite pages:
//
//	fav                       list
//	fav add <path> [title]    add (the oldest is evicted beyond five)
//	fav rm <path>             remove
//	fav clear                 remove all
func (a *App) Favorites(ctx context.Context, args []string) error {
	if len(args) == 0 {
		list, err := a.favoritesService.List(ctx)
		if err != nil {
			return err
		}
		printFavorites(list)
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			printlnFn("Usage: fav add <path> [title]")
			return nil
		}
		list, err := a.favoritesService.Add(ctx, args[1], pageTitle(args[1], args[2:]), "")
		if err != nil {
			return err
		}
		printFavorites(list)

	case "rm", "remove":
		if len(args) != 2 {
			printlnFn("Usage: fav rm <path>")
			return nil
		}
		list, err := a.favoritesService.Remove(ctx, args[1])
		if err != nil {
			return err
		}
		printFavorites(list)

	case "clear":
		if err := a.favoritesService.Clear(ctx); err != nil {
			return err
		}
		printlnFn("Favorites cleared.")

	default:
		printlnFn("Usage: fav [add <path> [title] | rm <path> | clear]")
	}
	return nil
}

// Visit records a page visit: visit <path> [title].
func (a *App) Visit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: visit <path> [title]")
		return nil
	}
	list, err := a.recentService.Visit(ctx, args[0], pageTitle(args[0], args[1:]), "")
	if err != nil {
		return err
	}
	printRecent(list)
	return nil
}

// Recent lists recently visited pages, or clears them with "recent clear".
func (a *App) Recent(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if args[0] != "clear" {
			printlnFn("Usage: recent [clear]")
			return nil
		}
		if err := a.recentService.Clear(ctx); err != nil {
			return err
		}
		printlnFn("Recent pages cleared.")
		return nil
	}

	list, err := a.recentService.List(ctx)
	if err != nil {
		return err
	}
	printRecent(list)
	return nil
}
