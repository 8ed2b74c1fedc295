package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ReportBaseURL     string
	AnnotationBaseURL string
	FastaFile         string
	AlignmentFile     string
	SurfaceFile       string
	ConservationFile  string
	MaxAlignments     int
	ShowAlignments    bool
	WorkerCount       int
	HTTPTimeout       time.Duration
	MaxRetries        int
	ListenAddr        string
	CacheSize         int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		ReportBaseURL:     getEnv("REPORT_BASE_URL", "https://xtalpred.godziklab.org/XtalPred-cgi/download.pl?dir="),
		AnnotationBaseURL: getEnv("ANNOTATION_BASE_URL", "https://ffas.godziklab.org/ffas/dssp/"),
		FastaFile:         getEnv("FASTA_FILE", "A.csq"),
		AlignmentFile:     getEnv("ALIGNMENT_FILE", "pdb101.ali"),
		SurfaceFile:       getEnv("SURFACE_FILE", "A.nets"),
		ConservationFile:  getEnv("CONSERVATION_FILE", "A.co"),
		MaxAlignments:     getEnvInt("MAX_ALIGNMENTS", 1),
		ShowAlignments:    getEnvBool("SHOW_ALIGNMENTS", false),
		WorkerCount:       getEnvInt("WORKER_COUNT", 1),
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", 60*time.Second),
		MaxRetries:        getEnvInt("MAX_RETRIES", 0),
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		CacheSize:         getEnvInt("ANNOTATION_CACHE_SIZE", 1024),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
