package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playbox/internal/session"
	"github.com/hazadus/go-playbox/internal/utils"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [trackid]",
		Short: "Play a track by its ID",
		Long:  `Play a single track from the catalog. Space toggles pause, Ctrl+C stops.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trackID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID трека: %s", args[0])
			}
			return app.playByID(ctx, trackID)
		},
	}
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// readKeys пересылает нажатые клавиши в канал
func readKeys(in io.Reader, keys chan<- byte) {
	buffer := make([]byte, 1)
	for {
		if _, err := in.Read(buffer); err != nil {
			return
		}
		keys <- buffer[0]
	}
}

func (app *Application) playByID(ctx context.Context, trackID int) error {
	track, ok := app.Catalog.Lookup(trackID)
	if !ok {
		return fmt.Errorf("трек с ID %d не найден", trackID)
	}

	fmt.Printf("🎵 Сейчас играет:\n")
	fmt.Printf("   ID: %d\n", track.ID)
	fmt.Printf("   Исполнитель: %s\n", track.Artist)
	fmt.Printf("   Название: %s\n", track.Title)
	fmt.Printf("   Альбом: %s\n", track.Album)
	if track.Length > 0 {
		fmt.Printf("   Продолжительность: %s\n", utils.FormatDurationFromSeconds(track.Length))
	}
	fmt.Println()

	fmt.Printf("🌐 Загружаем трек...\n")
	if err := app.Session.SelectTrack(ctx, trackID, 0); err != nil {
		return fmt.Errorf("ошибка запуска воспроизведения: %w", err)
	}

	fmt.Printf("🎮 Управление:\n")
	fmt.Printf("   [Пробел] - пауза/воспроизведение\n")
	fmt.Printf("   [Ctrl+C] - остановить и выйти\n")
	fmt.Println()

	enableRawMode()
	defer disableRawMode()

	keys := make(chan byte)
	go readKeys(os.Stdin, keys)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	return app.waitPlayback(ctx, os.Stdout, keys, ticker.C)
}

// waitPlayback обрабатывает клавиши и выводит прогресс, пока трек не доиграет
// или ctx не будет отменен
func (app *Application) waitPlayback(ctx context.Context, out io.Writer, keys <-chan byte, ticks <-chan time.Time) error {
	for {
		select {
		case key := <-keys:
			// Пробел или Enter
			if key == ' ' || key == '\n' || key == '\r' {
				if err := app.Session.TogglePlayPause(); err != nil {
					fmt.Fprintf(out, "\r\033[K❌ Ошибка: %v\n", err)
				}
			}

		case <-ticks:
			state := app.Session.State()
			if state.Finished {
				fmt.Fprintln(out, "\n✅ Воспроизведение завершено")
				return nil
			}
			position, length := app.Session.Progress()
			displayProgress(out, state.Status, position, length)

		case <-ctx.Done():
			fmt.Fprintln(out, "\n⏹️  Воспроизведение остановлено")
			return nil
		}
	}
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(out io.Writer, status session.Status, position, length time.Duration) {
	icon := "▶️"
	if status != session.Playing {
		icon = "⏸️"
	}

	if length <= 0 {
		fmt.Fprintf(out, "\r\033[K%s  %s", icon, utils.FormatDuration(position))
		return
	}

	percent := float64(position) / float64(length) * 100
	fmt.Fprintf(out, "\r\033[K%s  %.1f%% | %s / %s",
		icon,
		percent,
		utils.FormatDuration(position),
		utils.FormatDuration(length))
}
