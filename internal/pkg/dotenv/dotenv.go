package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load читает .env (или переданные файлы) и применяет флаг -port. Отсутствие файла не ошибка:
// в контейнере переменные приходят из окружения. loaded сообщает, был ли прочитан файл.
func Load(files ...string) (loaded bool, err error) {
	err = godotenv.Load(files...)
	switch {
	case err == nil:
		loaded = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return false, fmt.Errorf("load env file: %w", err)
	}

	if err := overridePort(os.Args[1:]); err != nil {
		return loaded, err
	}
	return loaded, nil
}

// overridePort разбирает только -port, остальные аргументы игнорируются.
func overridePort(args []string) error {
	flags := flag.NewFlagSet("dotenv", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	port := flags.String("port", "", "Server port (overrides PORT environment variable)")

	for i, arg := range args {
		name, _, inline := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "port" {
			continue
		}
		end := min(i+2, len(args))
		if inline {
			end = i + 1
		}
		if err := flags.Parse(args[i:end]); err != nil {
			return fmt.Errorf("parse port flag: %w", err)
		}
		break
	}

	if *port == "" {
		return nil
	}
	if err := os.Setenv("PORT", *port); err != nil {
		return fmt.Errorf("failed to set PORT environment variable: %w", err)
	}
	return nil
}
