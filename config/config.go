package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DBUrl       string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool

	// when set, an 'admin' account is created (or its password reset) at
	// startup
	AdminPassword string

	// external service credentials, read from the environment so they
	// never end up in shell history
	OpenWeatherKey  string
	OpenAIKey       string
	WeatherLocation string
	NewsQuery       string
}

func ParseFlags() (cfg Config, err error) {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number (default 80)")
	flag.StringVar(&cfg.DBUrl, "db-url", "bizportal.sqlite", "path to SQLite3 DB file (default bizportal.sqlite)")
	flag.StringVar(&cfg.TokenSecret, "token-secret", "", "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", 120, "token TTL in seconds (default 120)")
	flag.StringVar(&cfg.WeatherLocation, "weather-location", "Leganes,PH", "location passed to the weather lookup")
	flag.StringVar(&cfg.NewsQuery, "news-query", "Leganes Iloilo", "search query for the news feed")
	flag.StringVar(&cfg.AdminPassword, "admin-password", "", "seed password for the 'admin' account (optional)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	cfg.OpenWeatherKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
