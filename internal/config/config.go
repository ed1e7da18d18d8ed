package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Options struct {
	runAddr       string
	logLevel      string
	dataBaseDSN   string
	catalogSource string
	assetsDir     string
	migrationsDir string
}

func NewOptions() *Options {
	return new(Options)
}

// ParseFlags handles command line arguments
// and stores their values in the corresponding variables.
func (o *Options) ParseFlags() {
	loadEnvFile()

	o.register(flag.CommandLine)
	flag.Parse()
}

// Parse reads options from args into a dedicated flag set.
func (o *Options) Parse(args []string) error {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	o.register(fs)
	return fs.Parse(args)
}

func (o *Options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.runAddr, "a", getEnvOrDefault("RUN_ADDRESS", ":8080"), "address and port to run server")
	fs.StringVar(&o.logLevel, "l", getEnvOrDefault("LOG_LEVEL", "info"), "log level")
	fs.StringVar(&o.dataBaseDSN, "d", getEnvOrDefault("DATABASE_URI", ""), "database connection string")
	fs.StringVar(&o.catalogSource, "c", getEnvOrDefault("CATALOG_SOURCE", "./data/products.json"), "catalog file, archive or URL")
	fs.StringVar(&o.assetsDir, "s", getEnvOrDefault("ASSETS_DIR", "./assets"), "directory served under /assets")
	fs.StringVar(&o.migrationsDir, "m", getEnvOrDefault("MIGRATIONS_DIR", "./migrations"), "database migrations directory")
}

func (o *Options) RunAddr() string {
	return o.runAddr
}

func (o *Options) LogLevel() string {
	return o.logLevel
}

func (o *Options) DataBaseDSN() string {
	return o.dataBaseDSN
}

func (o *Options) CatalogSource() string {
	return o.catalogSource
}

func (o *Options) AssetsDir() string {
	return o.assetsDir
}

func (o *Options) MigrationsDir() string {
	return o.migrationsDir
}

// getEnvOrDefault reads an environment variable or returns a default value if the variable is not set or is empty.
func getEnvOrDefault(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// loadEnvFile loads the first .env found in the working directory or two levels up.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	for _, envPath := range []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "..", "..", ".env"),
	} {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf(".env file loaded from %s", envPath)
			return
		}
	}
	log.Printf("No .env file found, proceeding without it")
}
