package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playbox/internal/data"
	"github.com/hazadus/go-playbox/internal/utils"
)

// createTracksCommand создает команду tracks с привязкой к экземпляру приложения
func (app *Application) createTracksCommand() *cobra.Command {
	var query string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List tracks from the catalog",
		Long:  `Display the track catalog, optionally filtered by a search query.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.listTracks(cmd.OutOrStdout(), query, fuzzy)
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "filter by title or artist")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "rank tracks by fuzzy match instead of substring filter")
	return cmd
}

func (app *Application) listTracks(out io.Writer, query string, fuzzy bool) {
	if app.Catalog.Len() == 0 {
		fmt.Fprintln(out, "📚 Каталог пуст. Добавьте треки с помощью команды 'catalog import'.")
		return
	}

	var tracks []data.Track
	if fuzzy && strings.TrimSpace(query) != "" {
		tracks = app.Catalog.Rank(query)
	} else {
		tracks = app.Catalog.Search(query)
	}

	if len(tracks) == 0 {
		fmt.Fprintf(out, "🔍 По запросу %q ничего не найдено\n", query)
		return
	}

	fmt.Fprintf(out, "📚 Найдено треков: %d\n\n", len(tracks))
	printTrackTable(out, tracks)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "💡 Используйте 'playbox play [ID]' для воспроизведения трека")
}

// printTrackTable выводит треки таблицей
func printTrackTable(out io.Writer, tracks []data.Track) {
	fmt.Fprintf(out, "%-4s %-30s %-30s %-20s %-10s %-12s\n",
		"ID", "Исполнитель", "Название", "Альбом", "Длительность", "Размер")
	fmt.Fprintln(out, strings.Repeat("-", 120))

	for _, track := range tracks {
		duration := "N/A"
		if track.Length > 0 {
			duration = utils.FormatDurationFromSeconds(track.Length)
		}

		fileSize := "N/A"
		if track.FileSize > 0 {
			fileSize = utils.FormatFileSize(track.FileSize)
		}

		fmt.Fprintf(out, "%-4d %-30s %-30s %-20s %-10s %-12s\n",
			track.ID,
			utils.TruncateString(track.Artist, 28),
			utils.TruncateString(track.Title, 28),
			utils.TruncateString(track.Album, 18),
			duration,
			fileSize)
	}
}
