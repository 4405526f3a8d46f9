package main

import (
	"bufio"
	"errors"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playbox/internal/apperr"
	"github.com/hazadus/go-playbox/internal/selection"
	"github.com/hazadus/go-playbox/internal/session"
	"github.com/hazadus/go-playbox/internal/utils"
)

const shellHelp = `Команды:
  tracks                      список треков
  search <запрос>             поиск по названию и исполнителю
  playlists                   список плейлистов
  show <плейлист>             треки плейлиста
  create <имя>                создать плейлист
  rename <плейлист> <имя>     переименовать плейлист
  delete <плейлист>           удалить плейлист
  add <плейлист> [трек]       добавить трек (по умолчанию текущий)
  remove <плейлист> <трек>    удалить все вхождения трека
  play <трек> [плейлист]      воспроизвести трек
  toggle                      пауза/воспроизведение
  next, prev                  соседний трек плейлиста
  status                      состояние воспроизведения
  quit                        выход`

// errQuit завершает цикл оболочки
var errQuit = errors.New("выход")

// createShellCommand создает команду shell с привязкой к экземпляру приложения
func (app *Application) createShellCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive playlist shell",
		Long:  `Line-oriented shell to build playlists and control playback.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runShell(ctx, os.Stdin, cmd.OutOrStdout())
		},
	}
}

// runShell читает команды построчно до quit или конца ввода.
// Ошибка команды выводится и не прерывает работу.
func (app *Application) runShell(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "🎧 playbox shell. Введите help для списка команд.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		err := app.execShell(ctx, out, fields[0], fields[1:])
		if err == errQuit {
			fmt.Fprintln(out, "👋 До встречи!")
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "❌ Ошибка: %v\n", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (app *Application) execShell(ctx context.Context, out io.Writer, name string, args []string) error {
	switch name {
	case "help":
		fmt.Fprintln(out, shellHelp)
		return nil

	case "quit", "exit":
		return errQuit

	case "tracks":
		app.listTracks(out, "", false)
		return nil

	case "search":
		app.listTracks(out, strings.Join(args, " "), false)
		return nil

	case "playlists":
		app.printPlaylists(out)
		return nil

	case "show":
		ids, err := intArgs(args, 1)
		if err != nil {
			return err
		}
		return app.printPlaylist(out, ids[0])

	case "create":
		intent, err := app.Controller.Dispatch(ctx, selection.CreatePlaylist{Name: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		p, _ := app.Store.Snapshot().Get(intent.PlaylistID)
		fmt.Fprintf(out, "✅ Создан плейлист #%d: %s\n", p.ID, p.Name)
		return nil

	case "rename":
		if len(args) < 2 {
			return apperr.Validation("использование: rename <плейлист> <имя>")
		}
		ids, err := intArgs(args[:1], 1)
		if err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")
		if _, err := app.Controller.Dispatch(ctx, selection.RenamePlaylist{PlaylistID: ids[0], Name: name}); err != nil {
			return err
		}
		fmt.Fprintf(out, "✏️  Плейлист #%d переименован\n", ids[0])
		return nil

	case "delete":
		ids, err := intArgs(args, 1)
		if err != nil {
			return err
		}
		if _, err := app.Controller.Dispatch(ctx, selection.DeletePlaylist{PlaylistID: ids[0]}); err != nil {
			return err
		}
		fmt.Fprintf(out, "🗑️  Плейлист #%d удален\n", ids[0])
		return nil

	case "add":
		if len(args) == 1 {
			ids, err := intArgs(args, 1)
			if err != nil {
				return err
			}
			if _, err := app.Controller.Dispatch(ctx, selection.AddCurrentToPlaylist{PlaylistID: ids[0]}); err != nil {
				return err
			}
			fmt.Fprintf(out, "➕ Текущий трек добавлен в плейлист #%d\n", ids[0])
			return nil
		}
		ids, err := intArgs(args, 2)
		if err != nil {
			return err
		}
		if _, err := app.Controller.Dispatch(ctx, selection.AddTrackToPlaylist{PlaylistID: ids[0], TrackID: ids[1]}); err != nil {
			return err
		}
		fmt.Fprintf(out, "➕ Трек #%d добавлен в плейлист #%d\n", ids[1], ids[0])
		return nil

	case "remove":
		ids, err := intArgs(args, 2)
		if err != nil {
			return err
		}
		p, ok := app.Store.Snapshot().Get(ids[0])
		if !ok {
			return apperr.NotFound("плейлист с ID %d", ids[0])
		}
		if p.IndexOf(ids[1]) < 0 {
			fmt.Fprintf(out, "ℹ️  Трека #%d нет в плейлисте #%d, ничего не удалено\n", ids[1], ids[0])
			return nil
		}
		if _, err := app.Controller.Dispatch(ctx, selection.RemoveFromPlaylist{PlaylistID: ids[0], TrackID: ids[1]}); err != nil {
			return err
		}
		fmt.Fprintf(out, "➖ Трек #%d удален из плейлиста #%d\n", ids[1], ids[0])
		return nil

	case "play":
		var cmd selection.Command
		switch len(args) {
		case 1:
			ids, err := intArgs(args, 1)
			if err != nil {
				return err
			}
			cmd = selection.TapTrack{TrackID: ids[0]}
		default:
			ids, err := intArgs(args, 2)
			if err != nil {
				return err
			}
			cmd = selection.TapPlaylistTrack{TrackID: ids[0], PlaylistID: ids[1]}
		}
		if _, err := app.Controller.Dispatch(ctx, cmd); err != nil {
			return err
		}
		app.printStatus(out)
		return nil

	case "toggle":
		return app.dispatchAndReport(ctx, out, selection.TogglePlayback{})

	case "next":
		return app.dispatchAndReport(ctx, out, selection.NextTrack{})

	case "prev":
		return app.dispatchAndReport(ctx, out, selection.PreviousTrack{})

	case "status":
		app.printStatus(out)
		return nil
	}

	return apperr.Validation("неизвестная команда %q, введите help", name)
}

func (app *Application) dispatchAndReport(ctx context.Context, out io.Writer, cmd selection.Command) error {
	if _, err := app.Controller.Dispatch(ctx, cmd); err != nil {
		return err
	}
	app.printStatus(out)
	return nil
}

// intArgs разбирает ровно n числовых аргументов
func intArgs(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, apperr.Validation("ожидалось аргументов: %d, получено: %d", n, len(args))
	}
	ids := make([]int, n)
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, apperr.Validation("неверный ID: %s", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func (app *Application) printPlaylists(out io.Writer) {
	playlists := app.Store.Snapshot().Playlists()
	if len(playlists) == 0 {
		fmt.Fprintln(out, "📂 Плейлистов пока нет. Создайте: create <имя>")
		return
	}
	for _, p := range playlists {
		fmt.Fprintf(out, "📂 #%d %s (треков: %d)\n", p.ID, p.Name, len(p.TrackIDs))
	}
}

func (app *Application) printPlaylist(out io.Writer, playlistID int) error {
	p, ok := app.Store.Snapshot().Get(playlistID)
	if !ok {
		return apperr.NotFound("плейлист с ID %d", playlistID)
	}

	fmt.Fprintf(out, "📂 #%d %s (треков: %d)\n", p.ID, p.Name, len(p.TrackIDs))
	for i, id := range p.TrackIDs {
		track, found := app.Catalog.Lookup(id)
		if !found {
			fmt.Fprintf(out, "  %2d. #%d (нет в каталоге)\n", i+1, id)
			continue
		}
		fmt.Fprintf(out, "  %2d. #%d %s - %s\n", i+1, track.ID, track.Artist, track.Title)
	}
	return nil
}

func (app *Application) printStatus(out io.Writer) {
	state := app.Session.State()
	if state.TrackID == 0 {
		fmt.Fprintln(out, "⏹️  Нет активного трека")
		if state.Err != nil {
			fmt.Fprintf(out, "   Последняя ошибка: %v\n", state.Err)
		}
		return
	}

	track, _ := app.Catalog.Lookup(state.TrackID)
	icon := "⏸️"
	switch state.Status {
	case session.Playing:
		icon = "▶️"
	case session.Loading:
		icon = "⏳"
	}

	where := "без плейлиста"
	if p, ok := app.Store.Snapshot().Get(state.PlaylistID); ok {
		where = fmt.Sprintf("плейлист #%d %s", p.ID, p.Name)
	}

	position, length := app.Session.Progress()
	fmt.Fprintf(out, "%s %s: #%d %s - %s [%s / %s] (%s)\n",
		icon, state.Status, track.ID, track.Artist, track.Title,
		utils.FormatClock(position), utils.FormatClock(length), where)
}
