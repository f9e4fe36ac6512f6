package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	DataDir    string `yaml:"data_dir" env:"DATA_DIR" env-default:"./service_ark"`
	HTTPServer `yaml:"http_server"`
	Sheet      `yaml:"sheet"`
	Pricing    `yaml:"pricing"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"http://localhost:5173"`
}

// Sheet describes how model files are laid out on disk.
type Sheet struct {
	Delimiter        string   `yaml:"delimiter" env-default:";"`
	Encoding         string   `yaml:"encoding" env-default:"latin-1"`
	HeaderKeywords   []string `yaml:"header_keywords" env-default:"hours,timer"`
	QuantityColumn   string   `yaml:"quantity_column" env-default:"Antal"`
	FixedPriceColumn string   `yaml:"fixed_price_column"`
	FixedPriceIndex  int      `yaml:"fixed_price_index" env-default:"7"`
	PriceLists       []string `yaml:"price_lists" env-default:"Brutto,Haste,Uge,Måned"`
	MiscKeywords     []string `yaml:"misc_keywords"`
}

// Pricing holds the defaults a quote request falls back to.
type Pricing struct {
	HourlyRate          float64 `yaml:"hourly_rate" env:"PRICING_HOURLY_RATE" env-default:"750"`
	MarkupPercent       float64 `yaml:"markup_percent" env-default:"0"`
	FluidsMarkupPercent float64 `yaml:"fluids_markup_percent" env-default:"0"`
	MiscMarkupPercent   float64 `yaml:"misc_markup_percent" env-default:"0"`
	MiscSurcharge       float64 `yaml:"misc_surcharge" env-default:"500"`
	Boundary            string  `yaml:"boundary" env-default:"strict"`
	PriceList           string  `yaml:"price_list" env-default:"Brutto"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
