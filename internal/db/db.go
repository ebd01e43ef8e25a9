package db

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"
)

func InitDB(dbURL string) *sql.DB {
	dsn, err := normalizeDSN(dbURL)
	if err != nil {
		log.Fatal("DB_URL inválida: ", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal("Não foi possível conectar ao banco: ", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("Banco de dados não responde: ", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Conectado ao banco de dados")
	return db
}

// normalizeDSN forces parseTime so DATETIME columns scan into time.Time.
func normalizeDSN(dbURL string) (string, error) {
	cfg, err := mysql.ParseDSN(dbURL)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	);`,
	`CREATE TABLE IF NOT EXISTS sabores (
		id INT AUTO_INCREMENT PRIMARY KEY,
		sabor VARCHAR(255) NOT NULL,
		preco DECIMAL(10,2) NOT NULL,
		tamanho VARCHAR(20) NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS access_tokens (
		id CHAR(36) PRIMARY KEY,
		user_id INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		client VARCHAR(100) NOT NULL,
		revoked TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL,
		INDEX idx_access_tokens_user_id (user_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`,
}

func RunMigrations(db *sql.DB) {
	if err := migrate(db); err != nil {
		log.Fatal("Erro de migração: ", err)
	}
	log.Println("Migração concluída")
}

func migrate(db *sql.DB) error {
	for _, q := range migrations {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}
