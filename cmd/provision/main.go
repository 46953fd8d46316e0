package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"userbase-go-server/bootstrap"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// The server never migrates; this tool owns the schema. Statements run in
// order, each in its own round trip so a failure names its statement.
var createStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		clerk_id varchar(64) NOT NULL,
		email varchar(255) NOT NULL,
		name varchar(100),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_clerk_id ON users (clerk_id)`,
}

func main() {
	truncate := flag.Bool("truncate", false, "empty the users table instead of creating the schema")
	drop := flag.Bool("drop", false, "drop the users table instead of creating the schema")
	force := flag.Bool("force", false, "skip the confirmation prompt")
	flag.Parse()

	env := bootstrap.LoadEnv()

	dsn, err := env.DSN()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot compose database DSN")
	}
	db := bootstrap.NewDatabase(dsn)

	switch {
	case *drop:
		if !confirm("drop the users table and every row in it", *force) {
			fmt.Println("cancelled")
			return
		}
		run(db, `DROP TABLE IF EXISTS users`)
		log.Info().Msg("users table dropped")

	case *truncate:
		if !confirm("remove every row from the users table", *force) {
			fmt.Println("cancelled")
			return
		}
		run(db, `TRUNCATE TABLE users RESTART IDENTITY CASCADE`)
		log.Info().Msg("users table truncated")

	default:
		for _, stmt := range createStatements {
			run(db, stmt)
		}
		log.Info().Msg("users schema provisioned")
	}
}

func run(db *gorm.DB, stmt string) {
	if err := db.Exec(stmt).Error; err != nil {
		log.Fatal().Err(err).Str("statement", strings.Fields(stmt)[0]+" ...").Msg("statement failed")
	}
}

func confirm(action string, force bool) bool {
	if force {
		return true
	}

	fmt.Printf("This will %s. Continue? (yes/no): ", action)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "yes" || input == "y"
}
