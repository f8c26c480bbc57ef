package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// BotWeights tune how bot players rate move destinations.
type BotWeights struct {
	OpenRoom        int
	KnownRoom       int
	Hallway         int
	LeadsToOpenRoom int
}

type Config struct {
	HTTPAddr       string
	BoardFile      string
	Debug          bool
	LogLevel       string
	LogPretty      bool
	AllowedOrigins []string

	NATSURL           string
	NATSSubjectPrefix string

	MirrorDSN   string
	MirrorQueue int

	BotDelay   time.Duration
	BotWeights BotWeights
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvList(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func DefaultBotWeights() BotWeights {
	return BotWeights{
		OpenRoom:        100,
		KnownRoom:       10,
		Hallway:         20,
		LeadsToOpenRoom: 30,
	}
}

func Load() Config {
	def := DefaultBotWeights()
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		BoardFile:         os.Getenv("BOARD_FILE"),
		Debug:             getenvBool("DEBUG", false),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogPretty:         getenvBool("LOG_PRETTY", false),
		AllowedOrigins:    getenvList("ALLOWED_ORIGINS"),
		NATSURL:           os.Getenv("NATS_URL"),
		NATSSubjectPrefix: getenv("NATS_SUBJECT_PREFIX", "clueless"),
		MirrorDSN:         os.Getenv("MIRROR_DSN"),
		MirrorQueue:       getenvInt("MIRROR_QUEUE", 64),
		BotDelay:          time.Duration(getenvInt("BOT_DELAY_MS", 300)) * time.Millisecond,
		BotWeights: BotWeights{
			OpenRoom:        getenvInt("BOT_W_OPEN_ROOM", def.OpenRoom),
			KnownRoom:       getenvInt("BOT_W_KNOWN_ROOM", def.KnownRoom),
			Hallway:         getenvInt("BOT_W_HALLWAY", def.Hallway),
			LeadsToOpenRoom: getenvInt("BOT_W_LEADS_OPEN", def.LeadsToOpenRoom),
		},
	}
}
