package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver do Postgres (pgx)
	_ "github.com/lib/pq"              // Driver alternativo (DB_DRIVER=postgres)
)

// NewDBConnection abre a conexão e testa o Ping. driver é "pgx" ou "postgres".
func NewDBConnection(driver, connString string) (*sql.DB, error) {
	if driver != "pgx" && driver != "postgres" {
		return nil, fmt.Errorf("driver de banco não suportado: %s", driver)
	}

	// 1. Abre a conexão (mas não conecta de verdade ainda, só valida a string)
	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, err
	}

	// 2. Configura o Pool. Um único usuário, poucas conexões bastam.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. O Ping: A prova de fogo
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
