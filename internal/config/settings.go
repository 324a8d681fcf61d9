package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Settings holds the environment driven defaults of the client.
// Values edited in the settings window are stored as Fyne preferences
// and take precedence over these at runtime.
type Settings struct {
	APIBaseURL  string `env:"FORTUNE_API_URL" envDefault:"http://127.0.0.1:8080"`
	Language    string `env:"FORTUNE_LANG" envDefault:"zh"`
	PreviewPort string `env:"FORTUNE_PREVIEW_PORT" envDefault:"18081"`
	PDFFontPath string `env:"FORTUNE_PDF_FONT"` // UTF-8 TTF used for CJK text in PDF exports

	LogMaxSize    int  `env:"FORTUNE_LOG_MAX_SIZE" envDefault:"10"` // megabytes
	LogMaxBackups int  `env:"FORTUNE_LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int  `env:"FORTUNE_LOG_MAX_AGE" envDefault:"28"` // days
	LogLocalTime  bool `env:"FORTUNE_LOG_LOCAL_TIME" envDefault:"true"`
}

// LoadSettings reads an optional .env file and parses the environment.
// A missing .env file is not an error.
func LoadSettings(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Settings{}, fmt.Errorf("%s: %w", ErrSettingsParse, err)
			}
		} else {
			slog.Debug(MsgEnvFileLoaded, LogKeyComponent, CompMain, LogKeyFile, envFile)
		}
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	return s, nil
}
