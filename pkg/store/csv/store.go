// Package csv parses the five-table e-commerce snapshot from CSV byte
// streams into the immutable domain dataset.
package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Logical source names, also used as upload slot identifiers.
const (
	SourceOrders    = "orders"
	SourceItems     = "order_items"
	SourcePayments  = "order_payments"
	SourceProducts  = "products"
	SourceCustomers = "customers"
)

// SourceNames lists the five required sources in conventional order.
var SourceNames = []string{SourceOrders, SourceItems, SourcePayments, SourceProducts, SourceCustomers}

// FileNames maps each source to its conventional file name.
var FileNames = map[string]string{
	SourceOrders:    "orders_dataset.csv",
	SourceItems:     "order_items_dataset.csv",
	SourcePayments:  "order_payments_dataset.csv",
	SourceProducts:  "products_dataset.csv",
	SourceCustomers: "customers_dataset.csv",
}

// timestampLayout is the single deterministic, timezone-naive format used
// for order_purchase_timestamp.
const timestampLayout = "2006-01-02 15:04:05"

// Sources binds each required source to its byte stream. A nil reader means
// the source is unavailable.
type Sources struct {
	Orders    io.Reader
	Items     io.Reader
	Payments  io.Reader
	Products  io.Reader
	Customers io.Reader
}

// Load parses all five sources and derives the order calendar columns and
// join indexes. It fails with a MissingSourceError when any source is
// absent, a MissingColumnError when a source does not match its schema and
// a MalformedTimestampError on the first unparseable order timestamp.
func Load(src Sources) (*domain.Dataset, error) {
	for _, s := range []struct {
		name string
		r    io.Reader
	}{
		{SourceOrders, src.Orders},
		{SourceItems, src.Items},
		{SourcePayments, src.Payments},
		{SourceProducts, src.Products},
		{SourceCustomers, src.Customers},
	} {
		if s.r == nil {
			return nil, &MissingSourceError{Source: s.name}
		}
	}

	orders, err := readOrders(src.Orders)
	if err != nil {
		return nil, err
	}
	items, err := readItems(src.Items)
	if err != nil {
		return nil, err
	}
	payments, err := readPayments(src.Payments)
	if err != nil {
		return nil, err
	}
	products, err := readProducts(src.Products)
	if err != nil {
		return nil, err
	}
	customers, err := readCustomers(src.Customers)
	if err != nil {
		return nil, err
	}

	return domain.NewDataset(orders, items, payments, products, customers), nil
}

// table reads a full CSV source and validates its required columns,
// returning the header index and data records.
func table(source string, r io.Reader, required []string) (map[string]int, [][]string, error) {
	cr := stdcsv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s header: %w", source, err)
	}

	idx := indexMap(header)
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, nil, &MissingColumnError{Source: source, Column: col}
		}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s rows: %w", source, err)
	}
	return idx, records, nil
}

func indexMap(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

func readOrders(r io.Reader) ([]domain.Order, error) {
	idx, records, err := table(SourceOrders, r, []string{
		"order_id", "customer_id", "order_status", "order_purchase_timestamp",
	})
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(records))
	for i, rec := range records {
		raw := rec[idx["order_purchase_timestamp"]]
		ts, err := time.Parse(timestampLayout, raw)
		if err != nil {
			return nil, &MalformedTimestampError{Source: SourceOrders, Row: i + 1, Value: raw}
		}
		orders = append(orders, domain.Order{
			ID:          rec[idx["order_id"]],
			CustomerID:  rec[idx["customer_id"]],
			Status:      rec[idx["order_status"]],
			PurchasedAt: ts,
			Year:        ts.Year(),
			Month:       ts.Month(),
			Period:      domain.YearMonth{Year: ts.Year(), Month: ts.Month()},
		})
	}
	return orders, nil
}

func readItems(r io.Reader) ([]domain.OrderItem, error) {
	idx, records, err := table(SourceItems, r, []string{
		"order_id", "product_id", "price", "freight_value",
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(records))
	for i, rec := range records {
		price, err := strconv.ParseFloat(rec[idx["price"]], 64)
		if err != nil {
			return nil, fmt.Errorf("source %q row %d: parse price: %w", SourceItems, i+1, err)
		}
		freight, err := strconv.ParseFloat(rec[idx["freight_value"]], 64)
		if err != nil {
			return nil, fmt.Errorf("source %q row %d: parse freight_value: %w", SourceItems, i+1, err)
		}
		items = append(items, domain.OrderItem{
			OrderID:      rec[idx["order_id"]],
			ProductID:    rec[idx["product_id"]],
			Price:        price,
			FreightValue: freight,
		})
	}
	return items, nil
}

func readPayments(r io.Reader) ([]domain.Payment, error) {
	idx, records, err := table(SourcePayments, r, []string{
		"order_id", "payment_type", "payment_value",
	})
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, len(records))
	for i, rec := range records {
		value, err := decimal.NewFromString(rec[idx["payment_value"]])
		if err != nil {
			return nil, fmt.Errorf("source %q row %d: parse payment_value: %w", SourcePayments, i+1, err)
		}
		payments = append(payments, domain.Payment{
			OrderID: rec[idx["order_id"]],
			Type:    rec[idx["payment_type"]],
			Value:   value,
		})
	}
	return payments, nil
}

func readProducts(r io.Reader) ([]domain.Product, error) {
	idx, records, err := table(SourceProducts, r, []string{
		"product_id", "product_category_name",
	})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, domain.Product{
			ID:           rec[idx["product_id"]],
			CategoryName: rec[idx["product_category_name"]],
		})
	}
	return products, nil
}

func readCustomers(r io.Reader) ([]domain.Customer, error) {
	idx, records, err := table(SourceCustomers, r, []string{
		"customer_id", "customer_state",
	})
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(records))
	for _, rec := range records {
		customers = append(customers, domain.Customer{
			ID:    rec[idx["customer_id"]],
			State: rec[idx["customer_state"]],
		})
	}
	return customers, nil
}
