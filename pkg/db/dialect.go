package db

import (
	"fmt"
	"net"
	"net/url"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/smallbiznis/ratrace/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialect picks the GORM driver for cfg.DBType. An empty type means sqlite.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "postgres":
		return postgres.Open(postgresDSN(cfg)), nil
	case "mysql":
		return mysql.Open(mysqlDSN(cfg)), nil
	case "sqlite", "":
		return sqlite.Open(cfg.DBPath + "?_foreign_keys=on"), nil
	}
	return nil, fmt.Errorf("unsupported %s type", cfg.DBType)
}

func postgresDSN(cfg config.Config) string {
	query := url.Values{}
	query.Set("sslmode", cfg.DBSSLMode)
	query.Set("TimeZone", "UTC")
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:     "/" + cfg.DBName,
		RawQuery: query.Encode(),
	}
	return dsn.String()
}

func mysqlDSN(cfg config.Config) string {
	dsn := mysqldriver.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	dsn.DBName = cfg.DBName
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

// ContainsExpr returns a case-sensitive substring predicate for column in the
// dialect of conn. The placeholder receives the needle.
func ContainsExpr(conn *gorm.DB, column string) string {
	switch conn.Dialector.Name() {
	case "postgres":
		return fmt.Sprintf("strpos(%s, ?) > 0", column)
	case "mysql":
		return fmt.Sprintf("instr(binary %s, ?) > 0", column)
	default:
		return fmt.Sprintf("instr(%s, ?) > 0", column)
	}
}
