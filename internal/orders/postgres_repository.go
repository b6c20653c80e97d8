package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

// itemRecord is the JSONB shape of one frozen order line.
type itemRecord struct {
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	Quantity       int     `json:"quantity"`
	Size           *string `json:"size,omitempty"`
	Color          *string `json:"color,omitempty"`
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(itemRecordsFrom(order))
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	shippingJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	query := `INSERT INTO orders (id, user_id, status, items, shipping_address, total_cents, currency, payment_method, payment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`

	_, insertErr := r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.Status,
		itemsJSON,
		shippingJSON,
		order.Total.Amount,
		order.Total.Currency.String(),
		order.PaymentMethod,
		order.PaymentID)

	if insertErr != nil {
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

const orderColumns = `id, user_id, status, items, shipping_address, total_cents, currency, payment_method, payment_id, created_at, updated_at`

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	return order, nil
}

func (r *Repository) ListOrders(ctx context.Context, page, size int) (Page, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		`SELECT COUNT(*) FROM orders`, nil, page, size)
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID string, page, size int) (Page, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, []interface{}{userID}, page, size)
}

func (r *Repository) list(ctx context.Context, query, countQuery string, extra []interface{}, page, size int) (Page, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, extra...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count orders: %w", err)
	}

	args := append([]interface{}{size, page * size}, extra...)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Page{}, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, size)
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return Page{}, fmt.Errorf("scan order row: %w", scanErr)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("row iteration error: %w", err)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page{
		Content:       orders,
		TotalPages:    totalPages,
		TotalElements: total,
		Page:          page,
		Size:          size,
	}, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetOrderByID(ctx, id)
}

func (r *Repository) RevenueSince(ctx context.Context, since time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE status = $1 AND created_at >= $2`

	var revenue int64
	if err := r.db.QueryRowContext(ctx, query, domain.OrderStatusPaid, since).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("sum revenue: %w", err)
	}
	return revenue, nil
}

func (r *Repository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM orders WHERE created_at >= $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders since: %w", err)
	}
	return count, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order        domain.Order
		statusStr    string
		itemsJSON    []byte
		shippingJSON []byte
		totalCents   int64
		currencyCode string
		methodStr    string
	)

	if err := row.Scan(
		&order.ID,
		&order.UserID,
		&statusStr,
		&itemsJSON,
		&shippingJSON,
		&totalCents,
		&currencyCode,
		&methodStr,
		&order.PaymentID,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	status, err := domain.ToOrderStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("order status %q: %w", statusStr, err)
	}
	order.Status = status

	method, err := domain.ToPaymentMethod(methodStr)
	if err != nil {
		return nil, fmt.Errorf("payment method %q: %w", methodStr, err)
	}
	order.PaymentMethod = method

	unit, err := domain.ParseCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	order.Total = domain.NewMoney(totalCents, unit)

	var records []itemRecord
	if err := json.Unmarshal(itemsJSON, &records); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	order.Items = make([]domain.OrderItem, 0, len(records))
	for _, rec := range records {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   rec.ProductID,
			ProductName: rec.ProductName,
			UnitPrice:   domain.NewMoney(rec.UnitPriceCents, unit),
			Quantity:    rec.Quantity,
			Size:        rec.Size,
			Color:       rec.Color,
		})
	}

	if err := json.Unmarshal(shippingJSON, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("unmarshal shipping address: %w", err)
	}

	return &order, nil
}

func itemRecordsFrom(order *domain.Order) []itemRecord {
	records := make([]itemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		records = append(records, itemRecord{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPrice.Amount,
			Quantity:       item.Quantity,
			Size:           item.Size,
			Color:          item.Color,
		})
	}
	return records
}
