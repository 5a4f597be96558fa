// seed 建立或重設管理員帳號
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"cashflow/internal/database"
	"cashflow/internal/model"
	"cashflow/internal/service"
	"cashflow/internal/store"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

const minPasswordLen = 6

var (
	loadDotenv      = func() error { return godotenv.Load() }
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	getUserByEmail  = store.GetUserByEmail
	createUser      = store.CreateUser
	updateUser      = store.UpdateUser
	hashPassword    = service.HashPassword
	exitFunc        = os.Exit
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			exitFunc(0)
			return
		}
		fmt.Fprintf(os.Stderr, "seed 失敗: %v\n", err)
		exitFunc(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	email := fs.String("email", "admin@admin.com", "管理員 Email")
	name := fs.String("name", "Administrador", "管理員名稱")
	passwordFlag := fs.String("password", "", "密碼（省略時從終端機讀取）")
	reset := fs.Bool("reset", false, "先退回所有 migration 再重建（會清空所有資料）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	addr := strings.ToLower(strings.TrimSpace(*email))
	if addr == "" || strings.TrimSpace(*name) == "" {
		return fmt.Errorf("email 與 name 不可為空")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		if password, err = readPassword(stdin); err != nil {
			return fmt.Errorf("讀取密碼失敗: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	// 與 API 的 validate:"min=6" 相同，以字元數計算
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("密碼至少需要 %d 個字元", minPasswordLen)
	}

	if err := loadDotenv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("讀取 .env 失敗: %w", err)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	db, err := newPgxPool(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	if *reset {
		if err := rollbackAllFn(dbURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %v", err)
		}
		fmt.Fprintln(stdout, "已清空資料庫")
	}
	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	user, err := getUserByEmail(ctx, db, addr)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user, err = createUser(ctx, db, &model.User{
			Name:         strings.TrimSpace(*name),
			Email:        addr,
			PasswordHash: hash,
			IsAdmin:      true,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "已建立管理員 %s (id=%d)\n", user.Email, user.ID)
	case err != nil:
		return err
	default:
		user.Name = strings.TrimSpace(*name)
		user.PasswordHash = hash
		user.IsAdmin = true
		if err := updateUser(ctx, db, user); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "已重設管理員 %s (id=%d)\n", user.Email, user.ID)
	}
	return nil
}

// readPassword 在終端機上不回顯，管線輸入則讀取第一行
func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
