package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"gopantry/config"
	"gopantry/internal/pkg/database"
	"gopantry/internal/pkg/logger"
)

// gooseLogger adapta logger.Logger à interface goose.Logger.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(fmt.Sprintf(format, v...), nil)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal(fmt.Sprintf(format, v...), nil)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: arquivo .env não encontrado. Usando apenas o ambiente do sistema: %v", err)
	}

	var (
		configPath    string
		migrationsDir string
	)
	flag.StringVar(&configPath, "config", "", "arquivo de configuração opcional")
	flag.StringVar(&migrationsDir, "dir", "", "diretório das migrações (padrão: MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.LoadMigrateConfig(configPath)
	if err != nil {
		log.Fatalf("goose: %v", err)
	}
	if migrationsDir == "" {
		migrationsDir = cfg.MigrationsDir
	}

	appLog := logger.NewLogger(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("goose: falha ao conectar ao DB.", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLog.Error("goose: falha ao fechar o DB.", err)
		}
	}()

	goose.SetLogger(gooseLogger{log: appLog})
	if err := goose.SetDialect("postgres"); err != nil {
		appLog.Fatal("goose: dialeto não suportado.", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command, args := arguments[0], arguments[1:]

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		appLog.Fatal(fmt.Sprintf("goose %s falhou.", command), err)
	}

	appLog.Info("goose concluído.", map[string]interface{}{"command": command, "dir": migrationsDir})
}
