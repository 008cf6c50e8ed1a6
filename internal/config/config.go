package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port     string
		LogLevel string
	}
	Gemini struct {
		APIKey string
		Model  string
	}
	Speech struct {
		CredentialsFile string
		Language        string
		ListenSeconds   int
	}
	Schedule struct {
		Days      int
		SlotTimes []string
		Greeting  string
	}
}

func Load() Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("gemini.model", "gemini-1.5-pro")

	v.SetDefault("speech.language", "en-US")
	v.SetDefault("speech.listen_seconds", 15)

	v.SetDefault("schedule.days", 5)
	v.SetDefault("schedule.slot_times", "9:00 AM,10:30 AM,12:00 PM,2:00 PM,3:30 PM")
	v.SetDefault("schedule.greeting", "Hello, thank you for calling Confido Health. How may I help you today?")

	// Map envs
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.log_level", "LOG_LEVEL")

	v.BindEnv("gemini.api_key", "GOOGLE_API_KEY")
	v.BindEnv("gemini.model", "GEMINI_MODEL")

	v.BindEnv("speech.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")
	v.BindEnv("speech.language", "SPEECH_LANGUAGE")
	v.BindEnv("speech.listen_seconds", "SPEECH_LISTEN_SECONDS")

	v.BindEnv("schedule.days", "SCHEDULE_DAYS")
	v.BindEnv("schedule.slot_times", "SCHEDULE_SLOT_TIMES")
	v.BindEnv("schedule.greeting", "GREETING")

	var c Config
	c.Server.Port = v.GetString("server.port")
	c.Server.LogLevel = v.GetString("server.log_level")

	c.Gemini.APIKey = v.GetString("gemini.api_key")
	c.Gemini.Model = v.GetString("gemini.model")

	c.Speech.CredentialsFile = v.GetString("speech.credentials_file")
	c.Speech.Language = v.GetString("speech.language")
	c.Speech.ListenSeconds = v.GetInt("speech.listen_seconds")

	c.Schedule.Days = v.GetInt("schedule.days")
	c.Schedule.SlotTimes = splitTimes(v.GetString("schedule.slot_times"))
	c.Schedule.Greeting = v.GetString("schedule.greeting")

	log.Printf("config loaded: port=%s model=%s schedule_days=%d", c.Server.Port, c.Gemini.Model, c.Schedule.Days)
	return c
}

func splitTimes(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
